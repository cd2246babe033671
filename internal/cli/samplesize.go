/*
PURPOSE:
  Defines the 'samplesize' subcommand.
  Renders the sample-size distribution plot.

ARCHITECTURE INTEGRATION:
  - Calls: internal/dataset, internal/figure
  - Uses: internal/config

ERROR HANDLING:
  - First error aborts the command; main turns it into exit code 1.

USAGE:
  prism samplesize -o ./figures/samplesize

RELATED FILES:
  - internal/figure/samplesize.go
*/

package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/prismfig/prism/internal/config"
	"github.com/prismfig/prism/internal/figure"
	"github.com/prismfig/prism/internal/output"
)

var sampleSizeDirOverride string

var sampleSizeCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Generate the sample-size distribution plot",
	Long: `Plots the distribution of dataset sample sizes, one box per modality
group, on a log-scaled axis. Writes a timestamped PNG+SVG pair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if sampleSizeDirOverride != "" {
			cfg.SampleSizeDir = sampleSizeDirOverride
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		p, stats, err := figure.SampleSize(records)
		if err != nil {
			return err
		}
		output.Logger.Info("Sample-size statistics",
			"studies", stats.N,
			"groups", stats.Groups,
			"min", stats.Min,
			"q1", stats.Q1,
			"median", stats.Median,
			"q3", stats.Q3,
			"max", stats.Max,
		)

		stem, err := figure.Save(p, 10*vg.Inch, 5*vg.Inch, cfg.SampleSizeDir, "samplesize_plot")
		if err != nil {
			return err
		}
		output.Logger.Info("Sample-size plot saved in png and svg", "stem", stem)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleSizeCmd)
	sampleSizeCmd.Flags().StringVarP(&sampleSizeDirOverride, "output-dir", "o", "", "Output directory for the distribution-plot pair")
}
