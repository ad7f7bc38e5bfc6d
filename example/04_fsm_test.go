package atm_test

import (
	"context"
	"fmt"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/fsm"
)

// atm.Machine satisfies the generic contract fsm.StateMachine,
// so the helpers in package fsm work with it.
//
// fsm.Trace folds the Actions over the Machine and returns every Session visited.
func ExampleMachine_trace() {
	m := atm.Machine{Fingerprint: func(s atm.Session) uint64 { return s.Phase.Credential }}
	trace := fsm.Trace[atm.Session, atm.Action](m, atm.NewSession(10),
		atm.SwipeCard(7),
		atm.PressKey(atm.KeyEnter),
		atm.PressKey(atm.Key1),
		atm.PressKey(atm.Key4),
		atm.PressKey(atm.KeyEnter),
	)
	for _, s := range trace {
		fmt.Printf("%s %q %d\n", s.Phase, s.KeystrokeString(), s.CashInside)
	}
	// Output:
	// Waiting "" 10
	// Authenticating(7) "" 10
	// Authenticated "" 10
	// Authenticated "1" 10
	// Authenticated "14" 10
	// Waiting "" 10
}

// The machine never holds state, fsm.Driver is the loop around it:
// it keeps the current Session, applies Actions one by one, and records each transition.
func ExampleMachine_driver() {
	d := fsm.NewDriver[atm.Session, atm.Action](
		atm.Machine{Fingerprint: atm.KeystrokeFingerprint},
		atm.NewSession(5),
	)
	d.Notify.AfterTransition = func(_ context.Context, r fsm.Record[atm.Session, atm.Action]) {
		fmt.Printf("%s %q\n", r.To.Phase.Kind, r.To.KeystrokeString())
	}
	actions := []atm.Action{
		atm.SwipeCard(atm.HashKeys(atm.Key9)),
		atm.PressKey(atm.Key9),
		atm.PressKey(atm.KeyEnter),
		atm.PressKey(atm.Key2),
		atm.PressKey(atm.KeyEnter),
	}
	s, err := d.Pull(context.Background(), fsm.SliceSource(actions...), nil)
	fmt.Println("cash", s.CashInside, "records", len(d.History()), "error", err)
	// Output:
	// Authenticating ""
	// Authenticating "9"
	// Authenticated ""
	// Authenticated "2"
	// Waiting ""
	// cash 3 records 5 error <nil>
}
