package figure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismfig/prism/internal/model"
)

func scored(id string, uni, multi float64, metric, modality string) model.StudyRecord {
	return model.StudyRecord{
		ID:               id,
		Stage:            "included",
		UnimodalScore:    uni,
		MultimodalScore:  multi,
		SampleSize:       math.NaN(),
		EvaluationMetric: metric,
		Modality:         modality,
	}
}

func TestPerformanceStats(t *testing.T) {
	records := []model.StudyRecord{
		scored("S01", 0.80, 0.75, "AUC", "imaging + clinical"),        // delta -0.05, favors unimodal
		scored("S02", 0.70, 0.75, "AUC (macro)", "imaging + omics"),   // delta 0.05
		scored("S03", 0.65, 0.85, "AUC", "imaging + clinical"),        // delta 0.20, favors multimodal
		scored("S04", 0.60, 0.90, "accuracy", "imaging + clinical"),   // not AUC, skipped
		scored("S05", math.NaN(), 0.90, "AUC", "imaging + clinical"),  // missing score, skipped
	}

	p, stats, err := Performance(records)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.FavorsUnimodal)
	assert.Equal(t, 1, stats.FavorsMultimodal)
	assert.InDelta(t, 0.05, stats.MedianDelta, 1e-9)
}

func TestPerformanceNoPlottableStudies(t *testing.T) {
	records := []model.StudyRecord{
		scored("S01", 0.60, 0.90, "accuracy", "imaging"),
	}

	_, _, err := Performance(records)
	var ierr *model.DataIntegrityError
	require.ErrorAs(t, err, &ierr)
}
