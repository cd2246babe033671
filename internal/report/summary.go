/*
PURPOSE:
  Writes the reduced funnel counts as a JSON report next to the
  flowchart, so manuscript numbers can be quoted without reading them
  off the image.

REQUIREMENTS:
  User-specified:
  - Machine-readable counts per stage and per exclusion reason.

  Implementation-discovered:
  - Reports accumulate like the figures do: timestamped name, never
    overwritten.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (flowchart command)
  - Consumes: funnel.StageCounts

ERROR HANDLING:
  - Returns *model.WriteError on any file failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder with indentation.

USAGE:
  path, err := report.WriteSummary(counts, dir)

RELATED FILES:
  - internal/funnel/reducer.go

MAINTENANCE:
  - Keep field names stable; downstream notebooks parse this file.
*/

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prismfig/prism/internal/funnel"
	"github.com/prismfig/prism/internal/model"
)

// StageSummary is one funnel stage in the report, in flow order.
type StageSummary struct {
	Stage   string `json:"stage"`
	Reached int    `json:"reached"`

	// Excluded and Reasons are zero-filled, never omitted, for every
	// stage but the last; a zero count is information, not absence.
	Excluded int            `json:"excluded"`
	Reasons  map[string]int `json:"reasons,omitempty"`
}

// Summary is the on-disk shape of a reduced funnel.
type Summary struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total"`
	Included    int            `json:"included"`
	Stages      []StageSummary `json:"stages"`
}

// WriteSummary writes counts as flow_summary_<timestamp>.json in dir
// and returns the written path.
func WriteSummary(counts funnel.StageCounts, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &model.WriteError{Path: dir, Err: err}
	}

	summary := Summary{
		GeneratedAt: time.Now(),
		Total:       counts.Total(),
		Included:    counts.Included(),
	}
	for i, stage := range counts.Stages {
		s := StageSummary{Stage: stage, Reached: counts.Reached[stage]}
		if i < len(counts.Stages)-1 {
			s.Excluded = counts.Excluded[stage]
			s.Reasons = counts.Reasons[stage]
		}
		summary.Stages = append(summary.Stages, s)
	}

	path := uniquePath(filepath.Join(dir, "flow_summary_"+time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", &model.WriteError{Path: path, Err: err}
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return "", &model.WriteError{Path: path, Err: err}
	}
	return path, nil
}

// uniquePath appends .json, versioning the stem if a same-second run
// already claimed it.
func uniquePath(stem string) string {
	path := stem + ".json"
	for n := 2; ; n++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = fmt.Sprintf("%s_%d.json", stem, n)
	}
}
