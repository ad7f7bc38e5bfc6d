package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/go-atm/flcore"
	"github.com/Azure/go-atm/internal/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the atmsim command tree around its own viper instance.
func NewRootCommand() *cobra.Command {
	var (
		v       = viper.New()
		cfgFile string
	)
	rootCmd := &cobra.Command{
		Use:   "atmsim",
		Short: "Drive the ATM state machine from a script or the keyboard",
		Long: `A simulator around the ATM state machine.

Every swipe and key press is applied to the machine and the resulting
session is printed. Configuration is read from flags, ATMSIM_* environment
variables and an optional atmsim.yaml.

Example usage:
  atmsim run --script withdraw.yaml --cash 10
  atmsim interactive --verification keystrokes`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initConfig(v, cfgFile)
		},
	}

	sim.SetDefaults(v)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./atmsim.yaml)")
	flags.Uint64("cash", sim.DefaultConfig().Cash, "initial cash inside the machine")
	flags.String("verification", sim.VerifyPhase, "PIN verification: phase or keystrokes")
	flags.Int("history", sim.DefaultConfig().History, "transitions kept in history (0 = unlimited)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	_ = v.BindPFlag("cash", flags.Lookup("cash"))
	_ = v.BindPFlag("verification", flags.Lookup("verification"))
	_ = v.BindPFlag("history", flags.Lookup("history"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(newRunCommand(v), newInteractiveCommand(v))
	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("ATMSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("atmsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newRunner loads the config and provisions a Runner writing to the command output.
// The returned context carries the configured logger.
func newRunner(v *viper.Viper, cmd *cobra.Command) (context.Context, *sim.Runner, error) {
	cfg, err := sim.Load(v)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	runner, err := sim.NewRunner(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return nil, nil, err
	}
	return flcore.NewContext(cmd.Context(), logger), runner, nil
}
