package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismfig/prism/internal/model"
)

var (
	stages  = []string{"identified", "screened", "eligible", "included"}
	reasons = []string{
		"no modality comparison",
		"wrong population",
		"not a decision task",
		"wrong publication type",
		"duplicate",
	}
)

func rec(id, stage, reason string) model.StudyRecord {
	return model.StudyRecord{ID: id, Stage: stage, ExclusionReason: reason}
}

// syntheticTable is the 10-record funnel: 10 identified, 7 screened,
// 4 eligible, 2 included.
func syntheticTable() []model.StudyRecord {
	return []model.StudyRecord{
		rec("S01", "identified", "duplicate"),
		rec("S02", "identified", "duplicate"),
		rec("S03", "identified", "wrong population"),
		rec("S04", "screened", "no modality comparison"),
		rec("S05", "screened", "no modality comparison"),
		rec("S06", "screened", "wrong publication type"),
		rec("S07", "eligible", "not a decision task"),
		rec("S08", "eligible", "wrong population"),
		rec("S09", "included", ""),
		rec("S10", "included", ""),
	}
}

func TestReduceCounts(t *testing.T) {
	counts, err := Reduce(syntheticTable(), stages, reasons)
	require.NoError(t, err)

	assert.Equal(t, 10, counts.Reached["identified"])
	assert.Equal(t, 7, counts.Reached["screened"])
	assert.Equal(t, 4, counts.Reached["eligible"])
	assert.Equal(t, 2, counts.Reached["included"])

	assert.Equal(t, 3, counts.Excluded["identified"])
	assert.Equal(t, 3, counts.Excluded["screened"])
	assert.Equal(t, 2, counts.Excluded["eligible"])

	assert.Equal(t, 2, counts.Reasons["identified"]["duplicate"])
	assert.Equal(t, 1, counts.Reasons["identified"]["wrong population"])
	assert.Equal(t, 2, counts.Reasons["screened"]["no modality comparison"])
	assert.Equal(t, 1, counts.Reasons["screened"]["wrong publication type"])
	assert.Equal(t, 1, counts.Reasons["eligible"]["not a decision task"])
	assert.Equal(t, 1, counts.Reasons["eligible"]["wrong population"])

	assert.Equal(t, 10, counts.Total())
	assert.Equal(t, 2, counts.Included())
}

func TestReduceMonotoneFunnel(t *testing.T) {
	counts, err := Reduce(syntheticTable(), stages, reasons)
	require.NoError(t, err)

	for i := 0; i < len(stages)-1; i++ {
		entering := counts.Reached[stages[i]]
		advancing := counts.Reached[stages[i+1]]
		assert.LessOrEqual(t, advancing, entering, "funnel must not grow at %s", stages[i+1])

		// Conservation: entering = advancing + excluded, and the
		// exclusion buckets sum to the excluded count.
		assert.Equal(t, entering, advancing+counts.Excluded[stages[i]])
		sum := 0
		for _, n := range counts.Reasons[stages[i]] {
			sum += n
		}
		assert.Equal(t, counts.Excluded[stages[i]], sum)
	}
}

func TestReduceZeroFill(t *testing.T) {
	// Every record is included: all transitions have zero throughput.
	records := []model.StudyRecord{
		rec("S01", "included", ""),
		rec("S02", "included", ""),
	}
	counts, err := Reduce(records, stages, reasons)
	require.NoError(t, err)

	for _, s := range stages[:len(stages)-1] {
		excluded, ok := counts.Excluded[s]
		require.True(t, ok, "stage %s missing from Excluded", s)
		assert.Zero(t, excluded)

		for _, r := range reasons {
			n, ok := counts.Reasons[s][r]
			require.True(t, ok, "reason %q missing at stage %s", r, s)
			assert.Zero(t, n)
		}
		_, ok = counts.Reasons[s][ReasonUnspecified]
		require.True(t, ok, "reserved reason missing at stage %s", s)
	}

	// Vocabulary preserves the configured order, unspecified last.
	require.Len(t, counts.Vocabulary, len(reasons)+1)
	assert.Equal(t, reasons, counts.Vocabulary[:len(reasons)])
	assert.Equal(t, ReasonUnspecified, counts.Vocabulary[len(reasons)])
}

func TestReduceUnknownStage(t *testing.T) {
	records := []model.StudyRecord{rec("S01", "unknown_stage", "")}

	_, err := Reduce(records, stages, reasons)
	var ierr *model.DataIntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "S01", ierr.RecordID)
}

func TestReduceUnknownReason(t *testing.T) {
	records := []model.StudyRecord{rec("S01", "screened", "ran out of coffee")}

	_, err := Reduce(records, stages, reasons)
	var ierr *model.DataIntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestReduceUnspecifiedReason(t *testing.T) {
	// Excluded with an empty reason cell lands in the reserved bucket.
	records := []model.StudyRecord{
		rec("S01", "screened", ""),
		rec("S02", "included", ""),
	}
	counts, err := Reduce(records, stages, reasons)
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Excluded["screened"])
	assert.Equal(t, 1, counts.Reasons["screened"][ReasonUnspecified])
}

func TestReduceIncludedWithReason(t *testing.T) {
	records := []model.StudyRecord{rec("S01", "included", "duplicate")}

	_, err := Reduce(records, stages, reasons)
	var ierr *model.DataIntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestReduceTooFewStages(t *testing.T) {
	_, err := Reduce(nil, []string{"identified"}, reasons)
	var ierr *model.DataIntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestReduceEmptyTable(t *testing.T) {
	counts, err := Reduce(nil, stages, reasons)
	require.NoError(t, err)

	for _, s := range stages {
		assert.Zero(t, counts.Reached[s])
	}
	assert.Zero(t, counts.Total())
}
