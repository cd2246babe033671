/*
PURPOSE:
  Defines the core data structures used throughout Prism.
  These models represent the study records of the review table.

REQUIREMENTS:
  User-specified:
  - One record per candidate study: identifier, pipeline stage reached,
    exclusion reason (only when excluded), and the numeric metrics used
    by the comparison and distribution figures.

  Implementation-discovered:
  - Optional numeric cells are empty in the source table; NaN marks
    absence so records stay plain value types.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/dataset
  - Consumed by: internal/funnel, internal/figure
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs). See errors.go for the error taxonomy.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are read-only after loading; nothing mutates them.

USAGE:
  rec := model.StudyRecord{ID: "S001", Stage: "screened"}

RELATED FILES:
  - internal/dataset/loader.go
  - internal/model/errors.go

MAINTENANCE:
  - Update when the table gains new metric columns.
*/

package model

import "math"

// StudyRecord is one row of the review table: a candidate study, the
// funnel stage it reached, and the metrics the figures plot.
type StudyRecord struct {
	ID              string
	Stage           string
	ExclusionReason string // empty when the record was never excluded

	UnimodalScore    float64 // NaN when absent
	MultimodalScore  float64 // NaN when absent
	SampleSize       float64 // NaN when absent
	EvaluationMetric string
	Modality         string
}

// HasScores reports whether both performance scores are present.
func (r StudyRecord) HasScores() bool {
	return !math.IsNaN(r.UnimodalScore) && !math.IsNaN(r.MultimodalScore)
}

// HasSampleSize reports whether the sample-size metric is present.
func (r StudyRecord) HasSampleSize() bool {
	return !math.IsNaN(r.SampleSize)
}
