package flcore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
)

type Logger interface {
	With(args ...any) Logger
	WithGroup(name string) Logger
	Debug(msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	Info(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	Warn(msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	Error(msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Format is the output format of a Logger built by NewLogger.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	*slog.Logger
}

func FromSlog(l *slog.Logger) Logger { return &slogLogger{l} }

func (l *slogLogger) With(args ...any) Logger      { return &slogLogger{l.Logger.With(args...)} }
func (l *slogLogger) WithGroup(name string) Logger { return &slogLogger{l.Logger.WithGroup(name)} }

// NewLogger builds a Logger writing to w in the given format.
func NewLogger(w io.Writer, level slog.Level, format Format) (Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatText, "":
		return FromSlog(slog.New(slog.NewTextHandler(w, opts))), nil
	case FormatJSON:
		return FromSlog(slog.New(slog.NewJSONHandler(w, opts))), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", format, FormatText, FormatJSON)
	}
}

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a Logger dropping every record.
func Discard() Logger {
	return FromSlog(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})))
}

// NewTestLogger returns a Logger printing to t.Log.
func NewTestLogger(t *testing.T, opt ...slogt.Option) Logger {
	return FromSlog(slogt.New(t, opt...))
}
