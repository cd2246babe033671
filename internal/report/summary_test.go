package report

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismfig/prism/internal/funnel"
	"github.com/prismfig/prism/internal/model"
)

func TestWriteSummary(t *testing.T) {
	records := []model.StudyRecord{
		{ID: "S01", Stage: "identified", ExclusionReason: "duplicate"},
		{ID: "S02", Stage: "included"},
	}
	counts, err := funnel.Reduce(records,
		[]string{"identified", "included"},
		[]string{"duplicate"},
	)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := WriteSummary(counts, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Included)
	require.Len(t, summary.Stages, 2)
	assert.Equal(t, "identified", summary.Stages[0].Stage)
	assert.Equal(t, 1, summary.Stages[0].Excluded)
	assert.Equal(t, 1, summary.Stages[0].Reasons["duplicate"])
	// Zero-count reasons are written, not omitted.
	assert.Contains(t, summary.Stages[0].Reasons, funnel.ReasonUnspecified)
}

func TestWriteSummaryNeverOverwrites(t *testing.T) {
	counts, err := funnel.Reduce(nil, []string{"identified", "included"}, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	first, err := WriteSummary(counts, dir)
	require.NoError(t, err)
	second, err := WriteSummary(counts, dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
