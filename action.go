package atm

import "fmt"

// ActionKind tells what was done to the ATM.
type ActionKind uint8

const (
	ActionSwipeCard ActionKind = iota + 1
	ActionPressKey
)

func (k ActionKind) String() string {
	switch k {
	case ActionSwipeCard:
		return "SwipeCard"
	case ActionPressKey:
		return "PressKey"
	default:
		return "Unknown"
	}
}

// Action is something you can do to the ATM, the input event of Machine.
//
// Use SwipeCard or PressKey to construct one,
// the zero Action is not a valid input and is ignored by Machine.
type Action struct {
	Kind       ActionKind
	Credential uint64 // set for ActionSwipeCard
	Key        Key    // set for ActionPressKey
}

// SwipeCard is a card swipe carrying the card's credential fingerprint.
func SwipeCard(credential uint64) Action {
	return Action{Kind: ActionSwipeCard, Credential: credential}
}

// PressKey is a keypad press.
func PressKey(key Key) Action {
	return Action{Kind: ActionPressKey, Key: key}
}

// PressKeys expands keys into one PressKey Action per key.
func PressKeys(keys ...Key) []Action {
	rv := make([]Action, 0, len(keys))
	for _, k := range keys {
		rv = append(rv, PressKey(k))
	}
	return rv
}

func (a Action) String() string {
	switch a.Kind {
	case ActionSwipeCard:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Credential)
	case ActionPressKey:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Key)
	default:
		return a.Kind.String()
	}
}
