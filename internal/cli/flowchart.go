/*
PURPOSE:
  Defines the 'flowchart' subcommand.
  Reduces the review table into stage counts and renders the PRISMA
  flow diagram plus its JSON counts report.

REQUIREMENTS:
  User-specified:
  - No required arguments; the table is found via config/defaults.
  - Exit non-zero on any load, integrity, or write failure.

ARCHITECTURE INTEGRATION:
  - Calls: internal/dataset, internal/funnel, internal/figure,
    internal/report
  - Uses: internal/config

ERROR HANDLING:
  - First error aborts the command; main turns it into exit code 1.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Load Records -> Reduce -> Render -> Save.

USAGE:
  prism flowchart -o ./figures/flowchart

RELATED FILES:
  - internal/figure/flowchart.go

MAINTENANCE:
  - Update when the flowchart gains new companion artifacts.
*/

package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/prismfig/prism/internal/config"
	"github.com/prismfig/prism/internal/figure"
	"github.com/prismfig/prism/internal/funnel"
	"github.com/prismfig/prism/internal/output"
	"github.com/prismfig/prism/internal/report"
)

var flowchartDirOverride string

var flowchartCmd = &cobra.Command{
	Use:   "flowchart",
	Short: "Generate the PRISMA flow diagram",
	Long: `Reduces the review table into the stage-by-stage funnel counts and
renders the PRISMA flow diagram. Writes a timestamped PNG+SVG pair and a
JSON counts report; repeated runs accumulate, nothing is overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if flowchartDirOverride != "" {
			cfg.FlowchartDir = flowchartDirOverride
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}
		output.Logger.Info("Loaded review table", "records", len(records))

		counts, err := funnel.Reduce(records, cfg.Stages, cfg.Reasons)
		if err != nil {
			return err
		}
		output.Logger.Info("Reduced funnel",
			"total", counts.Total(),
			"included", counts.Included(),
		)

		p, err := figure.Flowchart(counts)
		if err != nil {
			return err
		}
		stem, err := figure.Save(p, 12*vg.Inch, 16*vg.Inch, cfg.FlowchartDir, "prisma_flowchart")
		if err != nil {
			return err
		}
		output.Logger.Info("Flowchart saved in png and svg", "stem", stem)

		reportPath, err := report.WriteSummary(counts, cfg.FlowchartDir)
		if err != nil {
			return err
		}
		output.Logger.Info("Counts report saved", "path", reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flowchartCmd)
	flowchartCmd.Flags().StringVarP(&flowchartDirOverride, "output-dir", "o", "", "Output directory for the flowchart pair")
}
