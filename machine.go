// Package atm models the control logic of an automated teller machine
// as a pure finite-state machine.
//
//	m := atm.Machine{}
//	s := atm.NewSession(10)
//	s = m.NextState(s, atm.SwipeCard(credential))
//	s = m.NextState(s, atm.PressKey(atm.Key1))
//	s = m.NextState(s, atm.PressKey(atm.KeyEnter))
//
// Machine never fails: out of phase or unknown inputs leave the Session unchanged,
// a wrong PIN or a rejected withdrawal resets the Session back to Waiting.
package atm

import "github.com/Azure/go-atm/fsm"

var _ fsm.StateMachine[Session, Action] = Machine{}

// Machine is the ATM transition function.
//
// The zero Machine verifies PINs with PhaseFingerprint.
type Machine struct {
	Fingerprint Fingerprinter
}

// NextState computes the Session after applying the Action to s.
//
// The returned Session never shares its register with s.
func (m Machine) NextState(s Session, a Action) Session {
	switch a.Kind {
	case ActionSwipeCard:
		if s.Phase.IsWaiting() {
			// swiping mid authentication is ignored, the first card wins
			return s.Clone().withPhase(Authenticating(a.Credential))
		}
	case ActionPressKey:
		switch {
		case s.Phase.IsWaiting():
			// keypad is locked until a card is swiped
		case a.Key.IsDigit():
			return s.withKey(a.Key)
		case a.Key.IsEnter() && s.Phase.IsAuthenticating():
			return m.verify(s)
		case a.Key.IsEnter() && s.Phase.IsAuthenticated():
			return withdraw(s)
		}
	}
	return s.Clone()
}

func (m Machine) verify(s Session) Session {
	fingerprint := m.Fingerprint
	if fingerprint == nil {
		fingerprint = PhaseFingerprint
	}
	ok := fingerprint(s) == s.Phase.Credential
	s = s.reset()
	if ok {
		s.Phase = Authenticated()
	}
	return s
}

// withdraw always ends the session, cash is only dispensed for an amount the machine holds.
func withdraw(s Session) Session {
	if amount, ok := ParseAmount(s.Keystrokes); ok && amount <= s.CashInside {
		s.CashInside -= amount
	}
	return s.reset()
}
