package fsm

import (
	"github.com/Azure/go-atm/flcore"
	"github.com/benbjohnson/clock"
)

// DefaultHistory is the number of Records a Driver keeps unless WithHistory is given.
const DefaultHistory = 64

// Option alters the behavior of a Driver.
type Option func(*options)

type options struct {
	clock   clock.Clock
	logger  flcore.Logger
	history int
}

// WithClock sets the clock used to time transitions, useful for unit test.
func WithClock(clock clock.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the fallback logger,
// a logger found in the context passed to Fire takes precedence.
func WithLogger(logger flcore.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHistory keeps the last n Records, 0 means no limit, negative disables history.
func WithHistory(n int) Option {
	return func(o *options) { o.history = n }
}
