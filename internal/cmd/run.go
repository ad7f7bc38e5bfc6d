package cmd

import (
	"fmt"
	"os"

	"github.com/Azure/go-atm/internal/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	var script string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Apply the events of a YAML script",
		Long: `Apply every event of a YAML script to a freshly provisioned machine.

A script is a list of steps:
  - swipe_pin: "1234"
  - keys: "1234"
  - enter: true
  - keys: "5"
  - enter: true`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(script)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			actions, err := sim.ParseScript(f)
			if err != nil {
				return err
			}
			ctx, runner, err := newRunner(v, cmd)
			if err != nil {
				return err
			}
			if _, err := runner.Play(ctx, actions); err != nil {
				return err
			}
			return runner.Summary()
		},
	}
	runCmd.Flags().StringVarP(&script, "script", "s", "", "event script (required)")
	_ = runCmd.MarkFlagRequired("script")
	return runCmd
}
