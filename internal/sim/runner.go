package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/flcore"
	"github.com/Azure/go-atm/fsm"
	"github.com/cenkalti/backoff/v4"
)

// Runner drives a simulated ATM and prints every transition to Out.
type Runner struct {
	Driver *fsm.Driver[atm.Session, atm.Action]
	Out    io.Writer
	Retry  *fsm.RetryOption

	logger flcore.Logger
}

// NewRunner provisions a machine according to cfg.
func NewRunner(cfg *Config, out io.Writer, logger flcore.Logger, opts ...fsm.Option) (*Runner, error) {
	fingerprint, err := cfg.Fingerprinter()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = flcore.Discard()
	}
	opts = append([]fsm.Option{
		fsm.WithLogger(logger),
		fsm.WithHistory(cfg.History),
	}, opts...)
	r := &Runner{
		Driver: fsm.NewDriver[atm.Session, atm.Action](
			atm.Machine{Fingerprint: fingerprint},
			atm.NewSession(cfg.Cash),
			opts...,
		),
		Out:    out,
		logger: logger,
		Retry: &fsm.RetryOption{
			Attempts: cfg.RetryAttempts,
			Backoff:  backoff.NewExponentialBackOff(),
		},
	}
	r.Driver.Notify.AfterTransition = func(_ context.Context, rec fsm.Record[atm.Session, atm.Action]) {
		fmt.Fprintln(r.Out, FormatRecord(rec))
	}
	return r, nil
}

// FormatRecord renders a transition as a single line.
//
//	PressKey(Enter)      phase=Waiting keys="" cash=9
func FormatRecord(rec fsm.Record[atm.Session, atm.Action]) string {
	return fmt.Sprintf("%-20s phase=%s keys=%q cash=%d",
		rec.Transition, rec.To.Phase, rec.To.KeystrokeString(), rec.To.CashInside)
}

// Play applies the scripted actions in order.
func (r *Runner) Play(ctx context.Context, actions []atm.Action) (atm.Session, error) {
	s, err := r.Driver.Pull(ctx, fsm.SliceSource(actions...), r.Retry)
	return s, r.finish(ctx, "script", s, err)
}

// Interactive applies commands read line by line from in, see ParseLine.
// Unparsable lines are reported to Out and skipped.
func (r *Runner) Interactive(ctx context.Context, in io.Reader) (atm.Session, error) {
	src := newLineSource(in, func(line string, err error) {
		fmt.Fprintf(r.Out, "ignored %q: %v\n", line, err)
	})
	s, err := r.Driver.Pull(ctx, src, r.Retry)
	return s, r.finish(ctx, "interactive", s, err)
}

func (r *Runner) finish(ctx context.Context, mode string, s atm.Session, err error) error {
	logger, ok := flcore.TryFromContext[flcore.Logger](ctx)
	if !ok {
		logger = r.logger
	}
	logger = logger.With("mode", mode)
	if err != nil {
		logger.ErrorContext(ctx, "simulation stopped", "error", err, "phase", s.Phase, "cash", s.CashInside)
		return fmt.Errorf("%s: %w", mode, err)
	}
	logger.InfoContext(ctx, "simulation finished", "phase", s.Phase, "cash", s.CashInside)
	return nil
}

// Summary writes the current session as indented JSON.
func (r *Runner) Summary() error {
	b, err := json.MarshalIndent(r.Driver.Current(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Out, string(b))
	return err
}
