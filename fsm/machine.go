// Package fsm defines the contract of a pure Finite-State-Machine,
// and a Driver to hold and advance the state of one.
package fsm

// StateMachine is a pure transition system from state S by transition T.
//
// NextState must be
//
//	total:         defined for every (state, transition) pair, inapplicable pairs return the state unchanged
//	deterministic: the same inputs always yield the same output
//	pure:          no observable side effects, the input state is not modified
//
// There is no error in the contract, rejection is expressed as a next state.
type StateMachine[S, T any] interface {
	NextState(state S, transition T) S
}

// Func adapts a plain function to a StateMachine.
//
//	var toggle fsm.StateMachine[bool, struct{}] = fsm.Func[bool, struct{}](
//		func(on bool, _ struct{}) bool { return !on },
//	)
type Func[S, T any] func(S, T) S

func (f Func[S, T]) NextState(s S, t T) S { return f(s, t) }

// Replay applies the transitions in order from initial, and returns the final state.
func Replay[S, T any](m StateMachine[S, T], initial S, transitions ...T) S {
	s := initial
	for _, t := range transitions {
		s = m.NextState(s, t)
	}
	return s
}

// Trace is like Replay, but returns every state visited, starting with initial.
func Trace[S, T any](m StateMachine[S, T], initial S, transitions ...T) []S {
	rv := make([]S, 0, len(transitions)+1)
	rv = append(rv, initial)
	s := initial
	for _, t := range transitions {
		s = m.NextState(s, t)
		rv = append(rv, s)
	}
	return rv
}
