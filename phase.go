package atm

import (
	"encoding/json"
	"fmt"
)

// PhaseKind is the authentication sub-state of a Session.
//
//	Waiting --SwipeCard--> Authenticating --Enter(ok)--> Authenticated --Enter--> Waiting
//	                                     \--Enter(bad)--> Waiting
type PhaseKind uint8

const (
	PhaseWaiting PhaseKind = iota
	PhaseAuthenticating
	PhaseAuthenticated
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseWaiting:
		return "Waiting"
	case PhaseAuthenticating:
		return "Authenticating"
	case PhaseAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Phase is the authentication phase of a Session.
//
// Credential is the fingerprint captured at swipe time,
// it only carries meaning in PhaseAuthenticating and is zero otherwise.
// Phase is comparable, two phases are the same iff they are ==.
type Phase struct {
	Kind       PhaseKind
	Credential uint64
}

// Waiting is the initial phase, no card is inserted.
func Waiting() Phase { return Phase{Kind: PhaseWaiting} }

// Authenticating is the phase after a card swipe, holding the expected credential.
func Authenticating(credential uint64) Phase {
	return Phase{Kind: PhaseAuthenticating, Credential: credential}
}

// Authenticated is the phase after a verified PIN, withdrawal is unlocked.
func Authenticated() Phase { return Phase{Kind: PhaseAuthenticated} }

func (p Phase) IsWaiting() bool        { return p.Kind == PhaseWaiting }
func (p Phase) IsAuthenticating() bool { return p.Kind == PhaseAuthenticating }
func (p Phase) IsAuthenticated() bool  { return p.Kind == PhaseAuthenticated }

// Phase will be printed as:
//
//	Waiting
//	Authenticating(1234)
//	Authenticated
func (p Phase) String() string {
	if p.Kind == PhaseAuthenticating {
		return fmt.Sprintf("%s(%d)", p.Kind, p.Credential)
	}
	return p.Kind.String()
}

type phaseJSON struct {
	Kind       string  `json:"kind"`
	Credential *uint64 `json:"credential,omitempty"`
}

// MarshalJSON allows us to marshal Phase to json.
//
//	{
//		"kind": "Authenticating",
//		"credential": 1234
//	}
func (p Phase) MarshalJSON() ([]byte, error) {
	rv := phaseJSON{Kind: p.Kind.String()}
	if p.Kind == PhaseAuthenticating {
		c := p.Credential
		rv.Credential = &c
	}
	return json.Marshal(rv)
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var v phaseJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Kind {
	case PhaseWaiting.String():
		*p = Waiting()
	case PhaseAuthenticating.String():
		if v.Credential == nil {
			return fmt.Errorf("phase %s requires a credential", v.Kind)
		}
		*p = Authenticating(*v.Credential)
	case PhaseAuthenticated.String():
		*p = Authenticated()
	default:
		return fmt.Errorf("unknown phase %q", v.Kind)
	}
	return nil
}
