/*
PURPOSE:
  Defines the 'all' subcommand.
  Runs the three figure commands in sequence, stopping at the first
  failure.

ARCHITECTURE INTEGRATION:
  - Calls: the flowchart, performance, and samplesize commands.

USAGE:
  prism all

RELATED FILES:
  - internal/cli/flowchart.go, performance.go, samplesize.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/prismfig/prism/internal/output"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate every figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, sub := range []*cobra.Command{flowchartCmd, performanceCmd, sampleSizeCmd} {
			output.Logger.Info("Generating figure", "command", sub.Name())
			if err := sub.RunE(sub, nil); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
