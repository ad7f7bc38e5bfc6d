// Package flcore carries the logger shared by the driver and the simulator.
package flcore

import "context"

type ctxKey struct{}

// TryFromContext returns the Logger stored in ctx by NewContext, if any.
func TryFromContext[T Logger](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKey{}).(T)
	return v, ok
}

// FromContext returns the Logger stored in ctx, or a discarding one.
func FromContext(ctx context.Context) Logger {
	if l, ok := TryFromContext[Logger](ctx); ok {
		return l
	}
	return Discard()
}

func NewContext(parent context.Context, logger Logger) context.Context {
	return context.WithValue(parent, ctxKey{}, logger)
}
