/*
PURPOSE:
  Reduces the flat record table into the stage-by-stage counts a PRISMA
  flow diagram needs: records reaching each stage, records dropped at
  each transition, and the per-reason breakdown of each drop.

REQUIREMENTS:
  User-specified:
  - Stage order and reason vocabulary are passed in, not hard-coded,
    so the diagram shape is data-driven and testable without rendering.
  - Counts are conserved: entering = advancing + excluded at every
    transition, and included + final exclusions = entering the last
    transition.
  - A stage or reason with zero throughput still appears with value 0.

  Implementation-discovered:
  - Records advance monotonically and never skip backward, so "reached
    stage s" is simply "recorded stage index >= index of s".
  - An excluded record with no recorded reason is counted under the
    reserved reason "unspecified" (the reason column is nullable, so an
    empty value is expected data, not corruption).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli, internal/figure
  - Consumes: []model.StudyRecord
  - Errors: *model.DataIntegrityError

ERROR HANDLING:
  - An unrecognized stage or reason, or a reason on a record that was
    never excluded, aborts the reduction. Nothing is silently dropped.

IMPLEMENTATION RULES:
  - Pure function: same records, stages, and reasons in; same counts out.
  - No rendering concerns here.

USAGE:
  counts, err := funnel.Reduce(records, cfg.Stages, cfg.Reasons)

RELATED FILES:
  - internal/figure/flowchart.go

MAINTENANCE:
  - The reducer is the only place counting logic lives; the renderers
    read StageCounts and nothing else.
*/

package funnel

import (
	"fmt"

	"github.com/prismfig/prism/internal/model"
)

// ReasonUnspecified buckets excluded records whose reason cell is empty.
// It is always part of the effective vocabulary.
const ReasonUnspecified = "unspecified"

// StageCounts is the reduced funnel: how many records reached each
// stage, how many dropped out at each transition, and why.
type StageCounts struct {
	// Stages is the funnel order the counts were reduced under.
	Stages []string

	// Reached maps each stage to the number of records that got at
	// least that far.
	Reached map[string]int

	// Excluded maps each stage (except the last) to the number of
	// records dropped between it and the next stage.
	Excluded map[string]int

	// Reasons maps each stage (except the last) to a reason -> count
	// breakdown of its exclusions. Every vocabulary reason is present,
	// zero or not.
	Reasons map[string]map[string]int

	// Vocabulary is the reason order the counts were reduced under,
	// with the reserved "unspecified" bucket last. Renderers iterate
	// this instead of ranging over the Reasons maps.
	Vocabulary []string
}

// Total returns the number of records that entered the funnel.
func (c StageCounts) Total() int {
	if len(c.Stages) == 0 {
		return 0
	}
	return c.Reached[c.Stages[0]]
}

// Included returns the number of records that survived every stage.
func (c StageCounts) Included() int {
	if len(c.Stages) == 0 {
		return 0
	}
	return c.Reached[c.Stages[len(c.Stages)-1]]
}

// Reduce counts the records through the funnel defined by stages, in
// order, bucketing exclusions by the reasons vocabulary. Stages and
// reasons absent from the data still appear with count 0.
func Reduce(records []model.StudyRecord, stages, reasons []string) (StageCounts, error) {
	counts := StageCounts{
		Stages:   append([]string(nil), stages...),
		Reached:  make(map[string]int, len(stages)),
		Excluded: make(map[string]int, len(stages)),
		Reasons:  make(map[string]map[string]int, len(stages)),
	}
	if len(stages) < 2 {
		return counts, &model.DataIntegrityError{Err: fmt.Errorf("need at least two stages, got %d", len(stages))}
	}

	stageIndex := make(map[string]int, len(stages))
	for i, s := range stages {
		counts.Reached[s] = 0
		stageIndex[s] = i
	}

	vocabulary := make(map[string]bool, len(reasons)+1)
	for _, r := range reasons {
		if !vocabulary[r] {
			counts.Vocabulary = append(counts.Vocabulary, r)
		}
		vocabulary[r] = true
	}
	if !vocabulary[ReasonUnspecified] {
		counts.Vocabulary = append(counts.Vocabulary, ReasonUnspecified)
	}
	vocabulary[ReasonUnspecified] = true

	// Zero-fill every transition and every reason up front so the
	// diagram always renders a complete structure.
	last := len(stages) - 1
	for _, s := range stages[:last] {
		counts.Excluded[s] = 0
		buckets := make(map[string]int, len(counts.Vocabulary))
		for _, r := range counts.Vocabulary {
			buckets[r] = 0
		}
		counts.Reasons[s] = buckets
	}

	for _, rec := range records {
		reached, ok := stageIndex[rec.Stage]
		if !ok {
			return counts, &model.DataIntegrityError{
				RecordID: rec.ID,
				Err:      fmt.Errorf("unknown stage %q", rec.Stage),
			}
		}

		// A record that reached stage i reached every stage before it.
		for _, s := range stages[:reached+1] {
			counts.Reached[s]++
		}

		if reached == last {
			if rec.ExclusionReason != "" {
				return counts, &model.DataIntegrityError{
					RecordID: rec.ID,
					Err:      fmt.Errorf("included record carries exclusion reason %q", rec.ExclusionReason),
				}
			}
			continue
		}

		// Excluded at the transition out of its recorded stage.
		reason := rec.ExclusionReason
		if reason == "" {
			reason = ReasonUnspecified
		}
		if !vocabulary[reason] {
			return counts, &model.DataIntegrityError{
				RecordID: rec.ID,
				Err:      fmt.Errorf("unknown exclusion reason %q", reason),
			}
		}
		counts.Excluded[rec.Stage]++
		counts.Reasons[rec.Stage][reason]++
	}

	// Conservation check. By construction Reached is monotone and
	// Excluded[s] = Reached[s] - Reached[next], but verify anyway so a
	// future counting bug fails the run instead of mislabeling boxes.
	for i, s := range stages[:last] {
		next := stages[i+1]
		if counts.Reached[s]-counts.Reached[next] != counts.Excluded[s] {
			return counts, &model.DataIntegrityError{
				Err: fmt.Errorf("conservation violated at %s -> %s: %d entering, %d advancing, %d excluded",
					s, next, counts.Reached[s], counts.Reached[next], counts.Excluded[s]),
			}
		}
	}

	return counts, nil
}
