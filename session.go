package atm

import (
	"slices"
	"strings"
)

// Session is the full state of the ATM.
//
// Keystrokes is the register of keys entered since the last reset, nil when cleared.
// CashInside persists across sessions, only a successful withdrawal decrements it.
type Session struct {
	Phase      Phase  `json:"phase"`
	Keystrokes []Key  `json:"keystrokes,omitempty"`
	CashInside uint64 `json:"cash_inside"`
}

// NewSession provisions a machine holding cash, waiting for a card.
func NewSession(cash uint64) Session {
	return Session{Phase: Waiting(), CashInside: cash}
}

// Equal reports whether two sessions hold the same value.
// A nil register equals an empty one.
func (s Session) Equal(o Session) bool {
	return s.Phase == o.Phase &&
		s.CashInside == o.CashInside &&
		slices.Equal(s.Keystrokes, o.Keystrokes)
}

// Clone returns a Session that does not share the register with s.
func (s Session) Clone() Session {
	s.Keystrokes = slices.Clone(s.Keystrokes)
	return s
}

func (s Session) withPhase(p Phase) Session {
	s.Phase = p
	return s
}

func (s Session) withKey(k Key) Session {
	keys := make([]Key, len(s.Keystrokes), len(s.Keystrokes)+1)
	copy(keys, s.Keystrokes)
	s.Keystrokes = append(keys, k)
	return s
}

// reset moves back to Waiting with a cleared register.
func (s Session) reset() Session {
	s.Phase = Waiting()
	s.Keystrokes = nil
	return s
}

// KeystrokeString renders the register like "12" or "" when empty.
func (s Session) KeystrokeString() string {
	var b strings.Builder
	for _, k := range s.Keystrokes {
		if k.IsDigit() {
			b.WriteByte(byte(k))
		} else {
			b.WriteString("<" + k.String() + ">")
		}
	}
	return b.String()
}
