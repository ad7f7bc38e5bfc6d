package fsm

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Source produces transitions for a Driver to Pull.
//
// Next returns io.EOF when there are no more transitions.
// Other errors are considered transient and may be retried,
// wrap an error with Permanent to stop retrying.
type Source[T any] interface {
	Next(context.Context) (T, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc[T any] func(context.Context) (T, error)

func (f SourceFunc[T]) Next(ctx context.Context) (T, error) { return f(ctx) }

// SliceSource produces the transitions in order, then io.EOF.
func SliceSource[T any](transitions ...T) Source[T] {
	i := 0
	return SourceFunc[T](func(context.Context) (T, error) {
		if i >= len(transitions) {
			return *new(T), io.EOF
		}
		i++
		return transitions[i-1], nil
	})
}

// ChanSource produces transitions received from the channel, io.EOF once it's closed.
func ChanSource[T any](transitions <-chan T) Source[T] {
	return SourceFunc[T](func(ctx context.Context) (T, error) {
		select {
		case <-ctx.Done():
			return *new(T), Permanent(ctx.Err())
		case t, ok := <-transitions:
			if !ok {
				return *new(T), io.EOF
			}
			return t, nil
		}
	})
}

// Permanent marks the error as not retryable.
func Permanent(err error) ErrPermanent { return ErrPermanent{err} }

type ErrPermanent struct{ error }
type ErrSource struct{ error }

func (e ErrPermanent) Unwrap() error { return e.error }
func (e ErrSource) Unwrap() error    { return e.error }
func (e ErrSource) Error() string    { return "source failed: " + e.error.Error() }

// RetryOption customizes how a Driver retries a failing Source.
type RetryOption struct {
	Attempts uint64          // 0 means no limit
	Backoff  backoff.BackOff // nil means exponential backoff
	Notify   backoff.Notify
	Timer    backoff.Timer
}

// next pulls one transition from src, with retry enabled according to the option.
func (d *Driver[S, T]) next(ctx context.Context, src Source[T], opt *RetryOption) (T, error) {
	if opt == nil {
		return src.Next(ctx)
	}
	var backOff backoff.BackOff = backoff.NewExponentialBackOff()
	if opt.Backoff != nil {
		backOff = opt.Backoff
	}
	backOff = backoff.WithContext(backOff, ctx)
	if opt.Attempts > 0 {
		backOff = backoff.WithMaxRetries(backOff, opt.Attempts)
	}
	var (
		rv      T
		attempt uint64
		logger  = d.loggerFrom(ctx)
	)
	err := backoff.RetryNotifyWithTimer(
		func() error {
			defer func() { attempt++ }()
			t, err := src.Next(ctx)
			var permanent ErrPermanent
			switch {
			case err == nil:
				rv = t
				return nil
			case errors.Is(err, io.EOF), errors.As(err, &permanent):
				return backoff.Permanent(err)
			default:
				return err
			}
		},
		backOff,
		func(err error, wait time.Duration) {
			logger.WarnContext(ctx, "source failed, retrying", "attempt", attempt, "wait", wait, "error", err)
			if opt.Notify != nil {
				opt.Notify(err, wait)
			}
		},
		opt.Timer,
	)
	return rv, err
}
