package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/go-atm/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := cmd.NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	t.Log(errOut.String())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "withdraw.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
- swipe_pin: "12"
- keys: "12"
- enter: true
- keys: "4"
- enter: true
`), 0o600))

	t.Run("script is applied with flags", func(t *testing.T) {
		out, err := execute(t, "", "run", "--script", script, "--cash", "10", "--verification", "keystrokes")
		require.NoError(t, err)
		assert.Contains(t, out, `phase=Waiting keys="" cash=6`)
		assert.Contains(t, out, `"cash_inside": 6`)
	})
	t.Run("config file is read", func(t *testing.T) {
		cfg := filepath.Join(dir, "atmsim.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("cash: 5\nverification: keystrokes\n"), 0o600))
		out, err := execute(t, "", "run", "--config", cfg, "-s", script)
		require.NoError(t, err)
		assert.Contains(t, out, `"cash_inside": 1`)
	})
	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("ATMSIM_CASH", "3")
		t.Setenv("ATMSIM_VERIFICATION", "keystrokes")
		out, err := execute(t, "", "run", "-s", script)
		require.NoError(t, err)
		assert.Contains(t, out, `cash=3`)
		assert.Contains(t, out, `"cash_inside": 3`, "4 > 3 is rejected")
	})
	t.Run("missing script", func(t *testing.T) {
		_, err := execute(t, "", "run", "-s", filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "open script")
	})
	t.Run("invalid config", func(t *testing.T) {
		_, err := execute(t, "", "run", "-s", script, "--verification", "retina")
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestInteractiveCommand(t *testing.T) {
	out, err := execute(t, "pin 7\nkeys 7\nenter\nkeys 2\nenter\n", "interactive", "--cash", "9", "--verification", "keystrokes")
	require.NoError(t, err)
	assert.Contains(t, out, `"cash_inside": 7`)
}
