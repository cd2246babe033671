/*
PURPOSE:
  Defines the root Cobra command for the Prism CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface with one subcommand per figure.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/prism/main.go
  - Calls: Child commands (flowchart, performance, samplesize, all, check)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep figure logic in subcommands; Root only wires things up.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/prism/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/prismfig/prism/internal/config"
	"github.com/prismfig/prism/internal/dataset"
	"github.com/prismfig/prism/internal/model"
	"github.com/prismfig/prism/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	verbose bool

	// shared per-command overrides
	dataDirOverride  string
	dataFileOverride string

	rootCmd = &cobra.Command{
		Use:   "prism",
		Short: "Figure generator for the systematic-review manuscript",
		Long: `Generates the manuscript figures from the review table:
a PRISMA flow diagram, a performance-comparison scatter plot, and a
sample-size distribution plot. Each figure command reads the table,
writes a timestamped PNG+SVG pair, and exits.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./prism.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDirOverride, "data-dir", "", "directory scanned for the review table (first *.csv wins)")
	rootCmd.PersistentFlags().StringVar(&dataFileOverride, "data-file", "", "explicit review table path (overrides --data-dir)")
}

// loadRecords applies the data overrides and reads the review table.
func loadRecords(cfg *config.Config) ([]model.StudyRecord, error) {
	if dataFileOverride != "" {
		cfg.DataFile = dataFileOverride
	}
	if dataDirOverride != "" {
		cfg.DataDir = dataDirOverride
	}

	if cfg.DataFile != "" {
		return dataset.Load(cfg.DataFile)
	}
	return dataset.LoadDir(cfg.DataDir)
}
