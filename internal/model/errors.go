/*
PURPOSE:
  Error taxonomy for the figure-generation pipeline.
  Every failure is one of three kinds: the input could not be loaded,
  the data violates the stage model, or the output could not be written.

REQUIREMENTS:
  User-specified:
  - All three are unrecoverable; the run aborts with a non-zero exit
    and a readable message. No retries, no partial output.
  - No error is silently swallowed: a bad record fails the whole run
    rather than being skipped.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/dataset (LoadError), internal/funnel and
    internal/figure (DataIntegrityError), internal/figure and
    internal/report (WriteError).
  - Checked by: callers via errors.As / errors.Is.

IMPLEMENTATION RULES:
  - Each type wraps its cause and implements Unwrap.

USAGE:
  var lerr *model.LoadError
  if errors.As(err, &lerr) { ... }

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Keep the taxonomy closed; new failure modes should fit one of these.
*/

package model

import "fmt"

// LoadError reports that the input table is missing, unreadable, or
// does not satisfy the column contract.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DataIntegrityError reports a value that violates the stage model:
// an unknown stage or reason, a reason on an included record, or a
// derived count that should be impossible.
type DataIntegrityError struct {
	RecordID string
	Err      error
}

func (e *DataIntegrityError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("data integrity: %v", e.Err)
	}
	return fmt.Sprintf("data integrity: record %s: %v", e.RecordID, e.Err)
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

// WriteError reports that an output artifact could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
