package sim

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/go-atm"
	"github.com/Azure/go-atm/flcore"
	"github.com/Azure/go-atm/fsm"
	"github.com/spf13/viper"
)

// Verification modes select the Fingerprinter of the simulated machine.
const (
	VerifyPhase      = "phase"      // atm.PhaseFingerprint, the placeholder check
	VerifyKeystrokes = "keystrokes" // atm.KeystrokeFingerprint
)

// Config holds all configuration for the simulator
type Config struct {
	// Initial cash inventory of the machine
	Cash uint64 `mapstructure:"cash"`

	// PIN verification mode, phase or keystrokes
	Verification string `mapstructure:"verification"`

	// Number of transitions kept in history (0 = unlimited)
	History int `mapstructure:"history"`

	// Retry attempts when reading events fails
	RetryAttempts uint64 `mapstructure:"retry_attempts"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Cash:          100,
		Verification:  VerifyPhase,
		History:       fsm.DefaultHistory,
		RetryAttempts: 3,
		Log: LogConfig{
			Level:  "info",
			Format: string(flcore.FormatText),
		},
	}
}

// SetDefaults registers the defaults into v, so env and config file keys resolve.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("cash", d.Cash)
	v.SetDefault("verification", d.Verification)
	v.SetDefault("history", d.History)
	v.SetDefault("retry_attempts", d.RetryAttempts)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration from v into a Config struct
func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string
	if _, err := c.Fingerprinter(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := flcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch flcore.Format(c.Log.Format) {
	case flcore.FormatText, flcore.FormatJSON:
	default:
		errs = append(errs, fmt.Sprintf("log.format must be %q or %q", flcore.FormatText, flcore.FormatJSON))
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

// Fingerprinter returns the Fingerprinter selected by Verification.
func (c *Config) Fingerprinter() (atm.Fingerprinter, error) {
	switch strings.ToLower(c.Verification) {
	case VerifyPhase, "":
		return atm.PhaseFingerprint, nil
	case VerifyKeystrokes:
		return atm.KeystrokeFingerprint, nil
	default:
		return nil, fmt.Errorf("verification must be %q or %q, got %q", VerifyPhase, VerifyKeystrokes, c.Verification)
	}
}

// Logger builds the Logger described by Log.
func (c *Config) Logger(w io.Writer) (flcore.Logger, error) {
	level, err := flcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return flcore.NewLogger(w, level, flcore.Format(c.Log.Format))
}
