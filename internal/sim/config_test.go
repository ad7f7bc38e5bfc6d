package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/internal/sim"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := viper.New()
		sim.SetDefaults(v)
		cfg, err := sim.Load(v)
		require.NoError(t, err)
		assert.Equal(t, sim.DefaultConfig(), cfg)
	})
	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "atmsim.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
cash: 250
verification: keystrokes
history: 0
log:
  level: debug
  format: json
`), 0o600))
		v := viper.New()
		sim.SetDefaults(v)
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := sim.Load(v)
		require.NoError(t, err)
		assert.EqualValues(t, 250, cfg.Cash)
		assert.Equal(t, sim.VerifyKeystrokes, cfg.Verification)
		assert.Equal(t, 0, cfg.History)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.EqualValues(t, 3, cfg.RetryAttempts)
	})
	t.Run("invalid values are all reported", func(t *testing.T) {
		v := viper.New()
		sim.SetDefaults(v)
		v.Set("verification", "retina")
		v.Set("log.level", "loud")
		v.Set("log.format", "xml")
		_, err := sim.Load(v)
		assert.ErrorContains(t, err, "verification")
		assert.ErrorContains(t, err, "log level")
		assert.ErrorContains(t, err, "log.format")
	})
}

func TestConfigFingerprinter(t *testing.T) {
	s := atm.Session{Phase: atm.Authenticating(1), Keystrokes: []atm.Key{atm.Key1}}
	cfg := sim.DefaultConfig()
	fp, err := cfg.Fingerprinter()
	require.NoError(t, err)
	assert.Equal(t, atm.PhaseFingerprint(s), fp(s))

	cfg.Verification = "KEYSTROKES"
	fp, err = cfg.Fingerprinter()
	require.NoError(t, err)
	assert.Equal(t, atm.KeystrokeFingerprint(s), fp(s))
}
