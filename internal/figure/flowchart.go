/*
PURPOSE:
  Renders the PRISMA flow diagram from reduced stage counts: one box
  per funnel stage down the left, one exclusion box per transition on
  the right, connectors following the flow order.

REQUIREMENTS:
  User-specified:
  - Deterministic layout. Positions depend only on the configured
    stage order; the data contributes nothing but the printed counts.
  - Every stage and every vocabulary reason appears, zero or not, so
    the diagram always has its complete structure.

  Implementation-discovered:
  - The canvas is a fixed 15x16 data-coordinate grid with axes hidden;
    boxes are polygons, connectors are lines with small triangle heads.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: funnel.StageCounts
  - Libraries: gonum.org/v1/plot (plotter polygons, labels, lines)

ERROR HANDLING:
  - Fewer than two stages is a DataIntegrityError; plotter construction
    errors propagate as-is.

USAGE:
  p, err := figure.Flowchart(counts)
  stem, err := figure.Save(p, 12*vg.Inch, 16*vg.Inch, dir, "prisma_flowchart")

RELATED FILES:
  - internal/funnel/reducer.go

MAINTENANCE:
  - Layout constants below are the only tuning knobs.
*/

package figure

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/prismfig/prism/internal/funnel"
	"github.com/prismfig/prism/internal/model"
)

// Layout constants, in data coordinates of the hidden 15x16 grid.
const (
	canvasW = 15
	canvasH = 16

	stageX = 2   // left edge of the stage column
	stageW = 4   // stage box width
	stageH = 1.8 // stage box height

	exclX = 8   // left edge of the exclusion column
	exclW = 5.5 // exclusion box width

	phaseX = 0.7 // x of the rotated phase labels
)

// Flowchart lays out the reduced counts as a PRISMA-style diagram.
func Flowchart(counts funnel.StageCounts) (*plot.Plot, error) {
	n := len(counts.Stages)
	if n < 2 {
		return nil, &model.DataIntegrityError{Err: fmt.Errorf("flowchart needs at least two stages, got %d", n)}
	}

	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = 0, canvasW
	p.Y.Min, p.Y.Max = 0, canvasH

	// Stage box centers, evenly spaced top to bottom.
	step := (canvasH - 2 - stageH) / float64(n-1)
	centerY := func(i int) float64 { return canvasH - 1 - stageH/2 - float64(i)*step }

	for i, stage := range counts.Stages {
		cy := centerY(i)

		label := fmt.Sprintf("%s\nn = %d", titleCase(stage), counts.Reached[stage])
		if err := addBox(p, stageX, cy-stageH/2, stageW, stageH, label, vg.Points(11)); err != nil {
			return nil, err
		}
		if err := addPhaseLabel(p, phaseX, cy, titleCase(stage)); err != nil {
			return nil, err
		}

		if i == n-1 {
			break
		}

		// Connector down to the next stage.
		next := centerY(i + 1)
		if err := addArrow(p, stageX+stageW/2, cy-stageH/2, stageX+stageW/2, next+stageH/2); err != nil {
			return nil, err
		}

		// Exclusion box for this transition, top-aligned with the
		// stage box it drains.
		exclH := step - 0.4
		exclTop := cy + stageH/2
		label = exclusionLabel(counts, stage)
		if err := addBox(p, exclX, exclTop-exclH, exclW, exclH, label, vg.Points(9)); err != nil {
			return nil, err
		}
		if err := addArrow(p, stageX+stageW, cy, exclX, cy); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// exclusionLabel builds the text of one exclusion box: the transition
// total followed by the full reason vocabulary, zeros included.
func exclusionLabel(counts funnel.StageCounts, stage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "excluded after %s\nn = %d\n\nreasons:", stage, counts.Excluded[stage])
	for _, reason := range counts.Vocabulary {
		fmt.Fprintf(&b, "\n• %s (n = %d)", reason, counts.Reasons[stage][reason])
	}
	return b.String()
}

// addBox draws a white rectangle with a black border and a centered
// multi-line label.
func addBox(p *plot.Plot, x, y, w, h float64, label string, size vg.Length) error {
	rect, err := plotter.NewPolygon(plotter.XYs{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	})
	if err != nil {
		return err
	}
	rect.Color = color.White
	rect.LineStyle.Color = color.Black
	rect.LineStyle.Width = vg.Points(1)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x + w/2, Y: y + h/2}},
		Labels: []string{label},
	})
	if err != nil {
		return err
	}
	labels.TextStyle[0].XAlign = draw.XCenter
	labels.TextStyle[0].YAlign = draw.YCenter
	labels.TextStyle[0].Font.Size = size

	p.Add(rect, labels)
	return nil
}

// addPhaseLabel draws the rotated stage name along the left margin.
func addPhaseLabel(p *plot.Plot, x, y float64, label string) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{label},
	})
	if err != nil {
		return err
	}
	labels.TextStyle[0].XAlign = draw.XCenter
	labels.TextStyle[0].YAlign = draw.YCenter
	labels.TextStyle[0].Rotation = math.Pi / 2
	labels.TextStyle[0].Font.Size = vg.Points(12)

	p.Add(labels)
	return nil
}

// addArrow draws a straight connector with a small triangular head at
// the destination.
func addArrow(p *plot.Plot, x0, y0, x1, y1 float64) error {
	shaft, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return err
	}
	shaft.LineStyle.Color = color.Black
	shaft.LineStyle.Width = vg.Points(1.5)

	// Unit direction of the connector; head geometry hangs off it.
	length := math.Hypot(x1-x0, y1-y0)
	ux, uy := (x1-x0)/length, (y1-y0)/length
	const headLen, headHalf = 0.3, 0.12
	bx, by := x1-headLen*ux, y1-headLen*uy

	head, err := plotter.NewPolygon(plotter.XYs{
		{X: x1, Y: y1},
		{X: bx - headHalf*uy, Y: by + headHalf*ux},
		{X: bx + headHalf*uy, Y: by - headHalf*ux},
	})
	if err != nil {
		return err
	}
	head.Color = color.Black
	head.LineStyle.Color = color.Black

	p.Add(shaft, head)
	return nil
}

// titleCase upper-cases the first rune of a stage name for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
