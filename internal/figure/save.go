/*
PURPOSE:
  Writes a rendered figure to disk as a PNG+SVG pair with a timestamped
  filename, so repeated runs accumulate instead of overwriting.

REQUIREMENTS:
  User-specified:
  - Save both formats from the same figure.
  - Never overwrite an earlier pair, even for reruns within the same
    second (automatic _2, _3, ... versioning).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: *plot.Plot
  - Errors: *model.WriteError

ERROR HANDLING:
  - Directory creation or either save failing aborts with a WriteError.
    No retry, no partial-output cleanup; the run is over either way.

USAGE:
  stem, err := figure.Save(p, 12*vg.Inch, 16*vg.Inch, dir, "prisma_flowchart")

RELATED FILES:
  - internal/figure/flowchart.go, performance.go, samplesize.go

MAINTENANCE:
  - PNG and SVG are the only formats the manuscript pipeline accepts.
*/

package figure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/prismfig/prism/internal/model"
)

// timestampFormat matches the figure names already referenced by the
// manuscript: prisma_flowchart_20250114_153012.png and friends.
const timestampFormat = "20060102_150405"

// Save writes p as <dir>/<base>_<timestamp>.png and .svg, creating dir
// if needed. If the pair already exists a numeric suffix is appended.
// It returns the common filename stem of the written pair.
func Save(p *plot.Plot, width, height vg.Length, dir, base string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &model.WriteError{Path: dir, Err: err}
	}

	stem := uniqueStem(filepath.Join(dir, base+"_"+time.Now().Format(timestampFormat)))

	pngPath := stem + ".png"
	if err := p.Save(width, height, pngPath); err != nil {
		return "", &model.WriteError{Path: pngPath, Err: err}
	}
	svgPath := stem + ".svg"
	if err := p.Save(width, height, svgPath); err != nil {
		return "", &model.WriteError{Path: svgPath, Err: err}
	}
	return stem, nil
}

// uniqueStem appends _2, _3, ... until neither file of the pair exists.
func uniqueStem(stem string) string {
	candidate := stem
	for n := 2; pathExists(candidate+".png") || pathExists(candidate+".svg"); n++ {
		candidate = fmt.Sprintf("%s_%d", stem, n)
	}
	return candidate
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
