package fsm

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Azure/go-atm/flcore"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Driver holds the current state of a StateMachine, and advances it one transition at a time.
//
// StateMachine itself never loops or blocks, Driver is the loop around it:
//
//	d := fsm.NewDriver(machine, initial)
//	d.Fire(ctx, transition)        // apply a single transition
//	d.Run(ctx, transitions)        // apply transitions from a channel until it's closed
//	d.Pull(ctx, source, &retry)    // pull transitions from a Source until io.EOF
//
// Driver is safe for concurrent use, transitions are applied one by one.
type Driver[S, T any] struct {
	Notify Notify[S, T] // Notify hooks around each transition

	machine StateMachine[S, T]
	initial S
	clock   clock.Clock
	logger  flcore.Logger
	limit   int

	firing  sync.Mutex   // serializes Fire
	mu      sync.RWMutex // protects current and history
	current S
	history []Record[S, T]
}

func NewDriver[S, T any](m StateMachine[S, T], initial S, opts ...Option) *Driver[S, T] {
	o := &options{
		clock:   clock.New(),
		logger:  flcore.Discard(),
		history: DefaultHistory,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Driver[S, T]{
		machine: m,
		initial: initial,
		current: initial,
		clock:   o.clock,
		logger:  o.logger,
		limit:   o.history,
	}
}

// Current returns the state held by the Driver.
func (d *Driver[S, T]) Current() S {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// History returns the kept Records, oldest first.
func (d *Driver[S, T]) History() []Record[S, T] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rv := make([]Record[S, T], len(d.history))
	copy(rv, d.history)
	return rv
}

// Reset restores the initial state and drops the history.
func (d *Driver[S, T]) Reset() {
	d.firing.Lock()
	defer d.firing.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = d.initial
	d.history = nil
}

// Fire applies one transition and returns the new state.
//
// Fire only fails when ctx is already done, the state is untouched then.
func (d *Driver[S, T]) Fire(ctx context.Context, transition T) (S, error) {
	d.firing.Lock()
	defer d.firing.Unlock()
	from := d.Current()
	if err := ctx.Err(); err != nil {
		return from, err
	}
	if d.Notify.BeforeTransition != nil {
		ctx = d.Notify.BeforeTransition(ctx, from, transition)
	}
	record := Record[S, T]{
		ID:         uuid.New(),
		From:       from,
		Transition: transition,
	}
	record.StartSpan(d.clock)
	record.To = d.machine.NextState(from, transition)
	record.EndSpan(d.clock)

	d.mu.Lock()
	d.current = record.To
	d.keep(record)
	d.mu.Unlock()

	d.loggerFrom(ctx).DebugContext(ctx, "transition applied",
		"id", record.ID,
		"transition", transition,
		"from", from,
		"to", record.To,
	)
	if d.Notify.AfterTransition != nil {
		d.Notify.AfterTransition(ctx, record)
	}
	return record.To, nil
}

// Run applies transitions received from the channel until it's closed or ctx is done.
func (d *Driver[S, T]) Run(ctx context.Context, transitions <-chan T) (S, error) {
	for {
		select {
		case <-ctx.Done():
			return d.Current(), ctx.Err()
		case t, ok := <-transitions:
			if !ok {
				return d.Current(), nil
			}
			if _, err := d.Fire(ctx, t); err != nil {
				return d.Current(), err
			}
		}
	}
}

// Pull applies transitions pulled from the Source until it reports io.EOF.
//
// Failures of the Source are retried according to opt, nil opt means no retry.
// The returned error is an ErrSource if the Source finally fails.
func (d *Driver[S, T]) Pull(ctx context.Context, src Source[T], opt *RetryOption) (S, error) {
	for {
		t, err := d.next(ctx, src, opt)
		switch {
		case errors.Is(err, io.EOF):
			return d.Current(), nil
		case err != nil:
			return d.Current(), ErrSource{err}
		}
		if _, err := d.Fire(ctx, t); err != nil {
			return d.Current(), err
		}
	}
}

// keep appends the record to history, must hold d.mu.
func (d *Driver[S, T]) keep(record Record[S, T]) {
	if d.limit < 0 {
		return
	}
	d.history = append(d.history, record)
	if d.limit > 0 && len(d.history) > d.limit {
		d.history = append(d.history[:0:0], d.history[len(d.history)-d.limit:]...)
	}
}

func (d *Driver[S, T]) loggerFrom(ctx context.Context) flcore.Logger {
	if logger, ok := flcore.TryFromContext[flcore.Logger](ctx); ok {
		return logger
	}
	return d.logger
}
