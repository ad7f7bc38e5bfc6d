package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInteractiveCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Read commands from stdin",
		Long: `Read commands from stdin, one per line:
  swipe 42      swipe a card with credential 42
  pin 1234      swipe a card whose credential is the hash of PIN 1234
  key 7         press a key, 0-9 or enter
  keys 1234     press several digits
  enter         press Enter`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, runner, err := newRunner(v, cmd)
			if err != nil {
				return err
			}
			if _, err := runner.Interactive(ctx, cmd.InOrStdin()); err != nil {
				return err
			}
			return runner.Summary()
		},
	}
}
