/*
PURPOSE:
  Renders the performance-comparison scatter plot: unimodal vs
  multimodal AUC, one point per study, colored by modality combination,
  with the y = x and median-delta reference lines.

REQUIREMENTS:
  User-specified:
  - Only AUC-evaluated studies with both scores present are plotted.
  - Axes fixed to [0.5, 1]; legend carries per-modality counts.
  - Report the headline statistics (total studies, studies favoring
    each side) so the manuscript can quote them.

  Implementation-discovered:
  - Modality groups are sorted before color assignment so colors are
    stable across runs.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: []model.StudyRecord
  - Libraries: gonum.org/v1/plot (scatter, lines, legend),
    gonum.org/v1/gonum/stat (median)

ERROR HANDLING:
  - An input with no plottable AUC studies is a DataIntegrityError;
    there is nothing sensible to render.

USAGE:
  p, stats, err := figure.Performance(records)

RELATED FILES:
  - internal/dataset/loader.go (score columns)

MAINTENANCE:
  - The 0.01 / 0.10 delta thresholds come from the review protocol.
*/

package figure

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/prismfig/prism/internal/model"
)

// PerformanceStats are the headline numbers of the comparison figure.
type PerformanceStats struct {
	Total            int     // studies plotted
	FavorsUnimodal   int     // delta < 0.01
	FavorsMultimodal int     // delta > 0.10
	MedianDelta      float64 // median of (multimodal - unimodal)
}

// Performance builds the scatter plot from the AUC-evaluated records.
func Performance(records []model.StudyRecord) (*plot.Plot, PerformanceStats, error) {
	groups := make(map[string]plotter.XYs)
	var deltas []float64
	var stats PerformanceStats

	for _, rec := range records {
		if !rec.HasScores() || !strings.Contains(rec.EvaluationMetric, "AUC") {
			continue
		}
		groups[rec.Modality] = append(groups[rec.Modality], plotter.XY{
			X: rec.UnimodalScore,
			Y: rec.MultimodalScore,
		})
		delta := rec.MultimodalScore - rec.UnimodalScore
		deltas = append(deltas, delta)
		if delta < 0.01 {
			stats.FavorsUnimodal++
		}
		if delta > 0.10 {
			stats.FavorsMultimodal++
		}
		stats.Total++
	}
	if stats.Total == 0 {
		return nil, stats, &model.DataIntegrityError{Err: fmt.Errorf("no studies with AUC scores to plot")}
	}

	sort.Float64s(deltas)
	stats.MedianDelta = stat.Quantile(0.5, stat.Empirical, deltas, nil)

	p := plot.New()
	p.Title.Text = "Unimodality vs. Multimodality AUC Performance"
	p.X.Label.Text = "Unimodality AUC"
	p.Y.Label.Text = "Multimodality AUC"
	p.X.Min, p.X.Max = 0.5, 1
	p.Y.Min, p.Y.Max = 0.5, 1
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		pts := groups[name]
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, stats, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%d)", name, len(pts)), s)
	}

	equal, err := referenceLine(0, color.RGBA{R: 200, A: 255})
	if err != nil {
		return nil, stats, err
	}
	p.Add(equal)
	p.Legend.Add("y = x (equal performance)", equal)

	median, err := referenceLine(stats.MedianDelta, color.RGBA{B: 200, A: 255})
	if err != nil {
		return nil, stats, err
	}
	p.Add(median)
	p.Legend.Add(fmt.Sprintf("median threshold (Δ=%.2f)", stats.MedianDelta), median)

	p.Legend.Top = true
	p.Legend.Left = true

	return p, stats, nil
}

// referenceLine is y = x + offset across the fixed [0.5, 1] axes.
func referenceLine(offset float64, col color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{
		{X: 0.5, Y: 0.5 + offset},
		{X: 1, Y: 1 + offset},
	})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = col
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	return line, nil
}
