package sim

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/fsm"
	"gopkg.in/yaml.v3"
)

// Step is one entry of an event script, exactly one field is set.
//
//	# withdraw.yaml
//	- swipe: 42          # card with credential 42
//	- swipe_pin: "1234"  # card whose credential is atm.HashKeys(1, 2, 3, 4)
//	- key: "7"           # a single key, "0".."9" or "enter"
//	- keys: "1234"       # one press per digit
//	- enter: true
type Step struct {
	Swipe    *uint64 `yaml:"swipe"`
	SwipePIN string  `yaml:"swipe_pin"`
	Key      string  `yaml:"key"`
	Keys     string  `yaml:"keys"`
	Enter    bool    `yaml:"enter"`
}

// Actions expands the Step into ATM Actions.
func (s Step) Actions() ([]atm.Action, error) {
	var (
		rv  []atm.Action
		set int
	)
	if s.Swipe != nil {
		set++
		rv = append(rv, atm.SwipeCard(*s.Swipe))
	}
	if s.SwipePIN != "" {
		set++
		action, err := swipePIN(s.SwipePIN)
		if err != nil {
			return nil, err
		}
		rv = append(rv, action)
	}
	if s.Key != "" {
		set++
		key, err := atm.ParseKey(s.Key)
		if err != nil {
			return nil, err
		}
		rv = append(rv, atm.PressKey(key))
	}
	if s.Keys != "" {
		set++
		keys, err := atm.ParseDigits(s.Keys)
		if err != nil {
			return nil, err
		}
		rv = append(rv, atm.PressKeys(keys...)...)
	}
	if s.Enter {
		set++
		rv = append(rv, atm.PressKey(atm.KeyEnter))
	}
	if set != 1 {
		return nil, fmt.Errorf("step must set exactly one of swipe, swipe_pin, key, keys, enter, got %d", set)
	}
	return rv, nil
}

// ParseScript decodes a YAML list of Steps into Actions.
func ParseScript(r io.Reader) ([]atm.Action, error) {
	var steps []Step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	var rv []atm.Action
	for i, step := range steps {
		actions, err := step.Actions()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		rv = append(rv, actions...)
	}
	return rv, nil
}

// ParseLine parses one interactive command into Actions.
//
//	swipe 42
//	pin 1234
//	key 7 | key enter
//	keys 1234
//	enter
//
// Blank lines and lines starting with # yield no Action.
func ParseLine(line string) ([]atm.Action, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	arg := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%s takes exactly one argument", cmd)
		}
		return args[0], nil
	}
	switch cmd {
	case "swipe":
		a, err := arg()
		if err != nil {
			return nil, err
		}
		credential, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid credential %q: %w", a, err)
		}
		return []atm.Action{atm.SwipeCard(credential)}, nil
	case "pin":
		a, err := arg()
		if err != nil {
			return nil, err
		}
		action, err := swipePIN(a)
		if err != nil {
			return nil, err
		}
		return []atm.Action{action}, nil
	case "key":
		a, err := arg()
		if err != nil {
			return nil, err
		}
		key, err := atm.ParseKey(a)
		if err != nil {
			return nil, err
		}
		return []atm.Action{atm.PressKey(key)}, nil
	case "keys":
		a, err := arg()
		if err != nil {
			return nil, err
		}
		keys, err := atm.ParseDigits(a)
		if err != nil {
			return nil, err
		}
		return atm.PressKeys(keys...), nil
	case "enter":
		if len(args) != 0 {
			return nil, fmt.Errorf("enter takes no argument")
		}
		return []atm.Action{atm.PressKey(atm.KeyEnter)}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func swipePIN(pin string) (atm.Action, error) {
	keys, err := atm.ParseDigits(pin)
	if err != nil {
		return atm.Action{}, err
	}
	return atm.SwipeCard(atm.HashKeys(keys...)), nil
}

// lineSource reads commands line by line, reporting bad lines to onError and skipping them.
//
// Read errors other than io.EOF are returned as is so the Driver may retry,
// a partially read line is kept until the rest of it arrives.
type lineSource struct {
	reader  *bufio.Reader
	partial string
	pending []atm.Action
	onError func(line string, err error)
}

func newLineSource(r io.Reader, onError func(string, error)) *lineSource {
	return &lineSource{reader: bufio.NewReader(r), onError: onError}
}

func (l *lineSource) Next(ctx context.Context) (atm.Action, error) {
	for len(l.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return atm.Action{}, fsm.Permanent(err)
		}
		chunk, err := l.reader.ReadString('\n')
		l.partial += chunk
		switch {
		case errors.Is(err, io.EOF):
			if l.partial == "" {
				return atm.Action{}, io.EOF
			}
		case err != nil:
			return atm.Action{}, err
		}
		line := strings.TrimRight(l.partial, "\r\n")
		l.partial = ""
		actions, err := ParseLine(line)
		if err != nil {
			if l.onError != nil {
				l.onError(line, err)
			}
			continue
		}
		l.pending = actions
	}
	next := l.pending[0]
	l.pending = l.pending[1:]
	return next, nil
}
