/*
PURPOSE:
  Reads the review table (CSV) into memory as study records.
  Enforces the column contract between the table and the figures.

REQUIREMENTS:
  User-specified:
  - Fail loudly if the file is missing, unreadable, or missing a
    required column. Never skip a malformed row.
  - Support the data-directory convention: load the first CSV found.

  Implementation-discovered:
  - Numeric cells in the source table use decimal commas in places;
    normalize them to dots before parsing.
  - Optional numeric cells are empty strings, loaded as NaN.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Produces: []model.StudyRecord
  - Errors: *model.LoadError

ERROR HANDLING:
  - Every failure is wrapped in a LoadError carrying the path.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Header order is free; cells are addressed by column name.

USAGE:
  records, err := dataset.LoadDir("data")

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Columns when the table gains metric columns.
*/

package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/prismfig/prism/internal/model"
)

// Column names of the review table. This is the fixed contract between
// the table and every figure; the loader rejects tables missing any of
// them, though only the first three need non-empty cells.
const (
	ColID               = "record_id"
	ColStage            = "stage"
	ColExclusionReason  = "exclusion_reason"
	ColUnimodalScore    = "unimodal_best_score"
	ColMultimodalScore  = "multimodal_best_score"
	ColEvaluationMetric = "evaluation_metric"
	ColModality         = "modalities"
	ColSampleSize       = "total_data"
)

// Columns lists every required header, in table order.
var Columns = []string{
	ColID, ColStage, ColExclusionReason,
	ColUnimodalScore, ColMultimodalScore,
	ColEvaluationMetric, ColModality, ColSampleSize,
}

// LoadDir loads the first CSV file (lexicographic) found in dir.
func LoadDir(dir string) ([]model.StudyRecord, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, &model.LoadError{Path: dir, Err: err}
	}
	if len(matches) == 0 {
		return nil, &model.LoadError{Path: dir, Err: fmt.Errorf("no CSV files found")}
	}
	sort.Strings(matches)
	return Load(matches[0])
}

// Load reads the review table at path into an ordered record slice.
func Load(path string) ([]model.StudyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &model.LoadError{Path: path, Err: fmt.Errorf("empty table")}
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: err}
	}

	records := make([]model.StudyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, &model.LoadError{Path: path, Err: fmt.Errorf("row %d: %w", i+2, err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerIndex maps each required column name to its position.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range Columns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (model.StudyRecord, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := model.StudyRecord{
		ID:               cell(ColID),
		Stage:            cell(ColStage),
		ExclusionReason:  cell(ColExclusionReason),
		EvaluationMetric: cell(ColEvaluationMetric),
		Modality:         cell(ColModality),
	}
	if rec.ID == "" {
		return rec, fmt.Errorf("empty %s", ColID)
	}
	if rec.Stage == "" {
		return rec, fmt.Errorf("empty %s", ColStage)
	}

	var err error
	if rec.UnimodalScore, err = parseOptionalFloat(cell(ColUnimodalScore)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColUnimodalScore, err)
	}
	if rec.MultimodalScore, err = parseOptionalFloat(cell(ColMultimodalScore)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColMultimodalScore, err)
	}
	if rec.SampleSize, err = parseOptionalFloat(cell(ColSampleSize)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColSampleSize, err)
	}
	return rec, nil
}

// parseOptionalFloat parses a numeric cell, tolerating decimal commas.
// An empty cell is NaN, not an error.
func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("bad numeric value %q", s)
	}
	return v, nil
}
