package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismfig/prism/internal/model"
)

func TestLoadParsesRecords(t *testing.T) {
	records, err := Load(filepath.Join("testdata", "records.csv"))
	require.NoError(t, err)
	require.Len(t, records, 5)

	first := records[0]
	assert.Equal(t, "S01", first.ID)
	assert.Equal(t, "included", first.Stage)
	assert.Empty(t, first.ExclusionReason)
	assert.Equal(t, "imaging + clinical", first.Modality)
	assert.Equal(t, 0.81, first.UnimodalScore)
	// Decimal comma normalized to a dot.
	assert.Equal(t, 0.89, first.MultimodalScore)
	assert.Equal(t, 1250.0, first.SampleSize)
	assert.True(t, first.HasScores())

	// Optional cells absent: NaN, not zero.
	last := records[4]
	assert.Equal(t, "duplicate", last.ExclusionReason)
	assert.False(t, last.HasScores())
	assert.False(t, last.HasSampleSize())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))

	var lerr *model.LoadError
	require.ErrorAs(t, err, &lerr)
}

func TestLoadMissingStageColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "record_id,exclusion_reason,unimodal_best_score,multimodal_best_score,evaluation_metric,modalities,total_data\n" +
		"S01,,0.8,0.9,AUC,imaging,100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	var lerr *model.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "stage")
}

func TestLoadBadNumericCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "record_id,stage,exclusion_reason,unimodal_best_score,multimodal_best_score,evaluation_metric,modalities,total_data\n" +
		"S01,included,,not-a-number,0.9,AUC,imaging,100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	var lerr *model.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := "record_id,stage,exclusion_reason,unimodal_best_score,multimodal_best_score,evaluation_metric,modalities,total_data\n" +
		"S01,included,,0.8,0.9,AUC,imaging,100\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "table1.csv"), []byte(content), 0644))

	records, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())

	var lerr *model.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "no CSV files")
}
