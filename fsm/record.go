package fsm

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

type Span struct {
	Start, End time.Time
}

func (s *Span) StartSpan(clock clock.Clock) {
	s.Start = clock.Now()
}
func (s *Span) EndSpan(clock clock.Clock) {
	s.End = clock.Now()
}
func (s Span) Duration() time.Duration { return s.End.Sub(s.Start) }

// Record is one transition applied by a Driver.
type Record[S, T any] struct {
	ID         uuid.UUID
	From, To   S
	Transition T
	Span
}

// Notify will be called before and after each transition being applied.
//
// Hooks run on the goroutine calling Fire while it holds the Driver,
// they may read Current and History but calling Fire or Reset from a hook deadlocks.
type Notify[S, T any] struct {
	BeforeTransition func(ctx context.Context, from S, transition T) context.Context
	AfterTransition  func(ctx context.Context, record Record[S, T])
}
