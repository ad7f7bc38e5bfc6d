package sim_test

import (
	"strings"
	"testing"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	t.Run("every step kind", func(t *testing.T) {
		actions, err := sim.ParseScript(strings.NewReader(`
- swipe: 42
- swipe_pin: "12"
- key: "7"
- key: enter
- keys: "305"
- enter: true
`))
		require.NoError(t, err)
		assert.Equal(t, []atm.Action{
			atm.SwipeCard(42),
			atm.SwipeCard(atm.HashKeys(atm.Key1, atm.Key2)),
			atm.PressKey(atm.Key7),
			atm.PressKey(atm.KeyEnter),
			atm.PressKey(atm.Key3),
			atm.PressKey(atm.Key0),
			atm.PressKey(atm.Key5),
			atm.PressKey(atm.KeyEnter),
		}, actions)
	})
	t.Run("empty script", func(t *testing.T) {
		actions, err := sim.ParseScript(strings.NewReader(""))
		assert.NoError(t, err)
		assert.Empty(t, actions)
	})
	t.Run("step with two fields", func(t *testing.T) {
		_, err := sim.ParseScript(strings.NewReader(`
- swipe: 1
- key: "1"
  enter: true
`))
		assert.ErrorContains(t, err, "step 2")
	})
	t.Run("bad key", func(t *testing.T) {
		_, err := sim.ParseScript(strings.NewReader(`- keys: "12x"`))
		assert.Error(t, err)
	})
	t.Run("not a list", func(t *testing.T) {
		_, err := sim.ParseScript(strings.NewReader(`swipe: 1`))
		assert.ErrorContains(t, err, "decode script")
	})
}

func TestParseLine(t *testing.T) {
	for line, expected := range map[string][]atm.Action{
		"":            nil,
		"  # comment": nil,
		"swipe 42":    {atm.SwipeCard(42)},
		"pin 1":       {atm.SwipeCard(atm.HashKeys(atm.Key1))},
		"key 3":       {atm.PressKey(atm.Key3)},
		"KEY Enter":   {atm.PressKey(atm.KeyEnter)},
		"keys 21":     {atm.PressKey(atm.Key2), atm.PressKey(atm.Key1)},
		"  enter  ":   {atm.PressKey(atm.KeyEnter)},
	} {
		actions, err := sim.ParseLine(line)
		assert.NoError(t, err, line)
		assert.Equal(t, expected, actions, line)
	}
	for _, line := range []string{
		"swipe",
		"swipe -1",
		"swipe 1 2",
		"pin abc",
		"key 10",
		"keys",
		"enter now",
		"dance",
	} {
		_, err := sim.ParseLine(line)
		assert.Error(t, err, line)
	}
}
