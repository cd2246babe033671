package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/prismfig/prism/internal/model"
)

func testPlot(t *testing.T) *plot.Plot {
	t.Helper()
	p := plot.New()
	p.Title.Text = "test"
	return p
}

func TestSaveWritesPair(t *testing.T) {
	dir := t.TempDir()

	stem, err := Save(testPlot(t), 4*vg.Inch, 4*vg.Inch, dir, "fig")
	require.NoError(t, err)

	for _, ext := range []string{".png", ".svg"} {
		info, err := os.Stat(stem + ext)
		require.NoError(t, err, "missing %s", ext)
		assert.Positive(t, info.Size())
	}
}

func TestSaveNeverOverwrites(t *testing.T) {
	// Two saves in the same second must yield distinct pairs.
	dir := t.TempDir()

	first, err := Save(testPlot(t), 4*vg.Inch, 4*vg.Inch, dir, "fig")
	require.NoError(t, err)
	second, err := Save(testPlot(t), 4*vg.Inch, 4*vg.Inch, dir, "fig")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSaveCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "figures")

	_, err := Save(testPlot(t), 4*vg.Inch, 4*vg.Inch, dir, "fig")
	require.NoError(t, err)
}

func TestSaveUnwritableDir(t *testing.T) {
	// A regular file where the directory should go.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Save(testPlot(t), 4*vg.Inch, 4*vg.Inch, filepath.Join(blocker, "figures"), "fig")

	var werr *model.WriteError
	require.ErrorAs(t, err, &werr)
}
