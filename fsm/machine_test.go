package fsm_test

import (
	"testing"

	"github.com/Azure/go-atm/fsm"
	"github.com/stretchr/testify/assert"
)

// counter adds transitions to the state, negative transitions are ignored.
var counter = fsm.Func[int, int](func(s, t int) int {
	if t < 0 {
		return s
	}
	return s + t
})

func TestReplay(t *testing.T) {
	assert.Equal(t, 0, fsm.Replay[int, int](counter, 0))
	assert.Equal(t, 6, fsm.Replay[int, int](counter, 0, 1, 2, 3))
	assert.Equal(t, 3, fsm.Replay[int, int](counter, 0, 1, -5, 2))
}

func TestTrace(t *testing.T) {
	assert.Equal(t, []int{10}, fsm.Trace[int, int](counter, 10))
	assert.Equal(t, []int{0, 1, 1, 3}, fsm.Trace[int, int](counter, 0, 1, -1, 2))
}
