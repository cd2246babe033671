/*
PURPOSE:
  Defines the 'performance' subcommand.
  Renders the unimodal-vs-multimodal AUC scatter plot.

ARCHITECTURE INTEGRATION:
  - Calls: internal/dataset, internal/figure
  - Uses: internal/config

ERROR HANDLING:
  - First error aborts the command; main turns it into exit code 1.

USAGE:
  prism performance -o ./figures/performance

RELATED FILES:
  - internal/figure/performance.go
*/

package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/prismfig/prism/internal/config"
	"github.com/prismfig/prism/internal/figure"
	"github.com/prismfig/prism/internal/output"
)

var performanceDirOverride string

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Generate the performance-comparison scatter plot",
	Long: `Plots unimodal vs multimodal AUC for every AUC-evaluated study,
colored by modality combination, with y = x and median-delta reference
lines. Writes a timestamped PNG+SVG pair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if performanceDirOverride != "" {
			cfg.PerformanceDir = performanceDirOverride
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		p, stats, err := figure.Performance(records)
		if err != nil {
			return err
		}
		output.Logger.Info("Performance statistics",
			"total_studies", stats.Total,
			"favoring_unimodality", stats.FavorsUnimodal,
			"favoring_multimodality", stats.FavorsMultimodal,
			"median_delta", stats.MedianDelta,
		)

		stem, err := figure.Save(p, 14*vg.Inch, 8*vg.Inch, cfg.PerformanceDir, "performance_plot")
		if err != nil {
			return err
		}
		output.Logger.Info("Performance plot saved in png and svg", "stem", stem)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(performanceCmd)
	performanceCmd.Flags().StringVarP(&performanceDirOverride, "output-dir", "o", "", "Output directory for the scatter-plot pair")
}
