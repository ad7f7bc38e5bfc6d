package atm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key is a key on the ATM keypad: the digits 0-9 and Enter.
//
// Digit keys share their value with the ASCII digit they print,
// so converting a Key to its character is a plain byte conversion.
type Key byte

const (
	Key0 Key = '0' + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyEnter Key = '\n'
)

// Digits returns the digit Keys in keypad order.
func Digits() []Key {
	return []Key{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}
}

func (k Key) IsDigit() bool { return k >= Key0 && k <= Key9 }
func (k Key) IsEnter() bool { return k == KeyEnter }

// IsValid reports whether the Key exists on the keypad.
func (k Key) IsValid() bool { return k.IsDigit() || k.IsEnter() }

func (k Key) String() string {
	switch {
	case k.IsDigit():
		return string(rune(k))
	case k.IsEnter():
		return "Enter"
	default:
		return fmt.Sprintf("Key(%d)", byte(k))
	}
}

// ParseKey parses "0".."9" and "enter" (case insensitive) into a Key.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "enter") {
		return KeyEnter, nil
	}
	if len(s) == 1 && Key(s[0]).IsDigit() {
		return Key(s[0]), nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// ParseDigits parses a string of digits like "1234" into digit Keys.
func ParseDigits(s string) ([]Key, error) {
	keys := make([]Key, 0, len(s))
	for i := 0; i < len(s); i++ {
		k := Key(s[i])
		if !k.IsDigit() {
			return nil, fmt.Errorf("%q is not a digit at position %d of %q", s[i], i, s)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (k Key) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
