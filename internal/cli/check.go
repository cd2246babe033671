/*
PURPOSE:
  Defines the 'check' subcommand.
  Loads the review table and prints the reduced funnel without writing
  any figure, as a pre-run validation step.

REQUIREMENTS:
  User-specified:
  - Validate the table before a full figure run.

  Implementation-discovered:
  - Useful while curating the table: surfaces unknown stages and
    reasons immediately.

ARCHITECTURE INTEGRATION:
  - Calls: internal/dataset, internal/funnel

ERROR HANDLING:
  - Prints error if the table is missing or inconsistent.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  prism check --data-dir ./data

RELATED FILES:
  - internal/funnel/reducer.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prismfig/prism/internal/config"
	"github.com/prismfig/prism/internal/funnel"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the review table and print the funnel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d records\n", len(records))

		counts, err := funnel.Reduce(records, cfg.Stages, cfg.Reasons)
		if err != nil {
			return err
		}

		last := len(counts.Stages) - 1
		for i, stage := range counts.Stages {
			fmt.Printf("%-12s n = %d\n", stage, counts.Reached[stage])
			if i == last {
				break
			}
			fmt.Printf("  excluded:  n = %d\n", counts.Excluded[stage])
			for _, reason := range counts.Vocabulary {
				if n := counts.Reasons[stage][reason]; n > 0 {
					fmt.Printf("    %-28s n = %d\n", reason, n)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
