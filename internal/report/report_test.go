package report

import (
	"bytes"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensward-robotics/pitchrover/internal/rover"
	"github.com/greensward-robotics/pitchrover/internal/surface"
)

func sampleLog() []rover.StepRecord {
	return []rover.StepRecord{
		{Step: 0, Mode: rover.Moving, EnergyJ: 1, CoveragePct: 5, MeanAbsMM: 0.1, RMSMM: 0.12},
		{Step: 1, Mode: rover.Repairing, EnergyJ: 12, CoveragePct: 9, MeanAbsMM: 0.08, RMSMM: 0.1},
		{Step: 2, Mode: rover.Moving, EnergyJ: 13, CoveragePct: 12, MeanAbsMM: 0.08, RMSMM: 0.1},
	}
}

func sampleResult() rover.Result {
	return rover.Result{
		RunID:          "run-test-1",
		Steps:          3,
		RepairEvents:   1,
		TotalEnergyJ:   13,
		DutyCyclePct:   100.0 / 3.0,
		FinalRMSMM:     0.1,
		FinalMeanAbsMM: 0.08,
		FinalCoverage:  12,
	}
}

func TestWriteStepLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteStepLog(&buf, sampleLog()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per step")

	assert.Equal(t, []string{"step", "mode", "energy_j", "coverage_pct", "mean_abs_mm", "rms_mm"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "repairing", rows[2][1])
	assert.Equal(t, "moving", rows[3][1])
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "run-test-1", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "1", rows[1][2])
}

func TestWriteHTMLReport(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	grid := surface.Build(rng, 8, 20, 0.1, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLReport(&buf, sampleResult(), sampleLog(), grid))

	html := buf.String()
	assert.True(t, strings.Contains(html, "run-test-1"), "report should name the run")
	assert.NotEmpty(t, html)
}

func TestGeneratePlots(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	grid := surface.Build(rng, 8, 20, 0.1, nil)

	dir := t.TempDir()
	n, err := GeneratePlots(dir, sampleLog(), grid)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, name := range []string{"energy.png", "rms_roughness.png", "coverage.png", "surface.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestHeightGridAdapter(t *testing.T) {
	t.Parallel()

	g := surface.New(4, 6)
	g.Cells[g.Idx(2, 3)] = -1.25

	hg := heightGrid{g}
	c, r := hg.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 6, r)
	assert.InDelta(t, -1.25, hg.Z(2, 3), 1e-12)
	assert.Equal(t, 2.0, hg.X(2))
	assert.Equal(t, 3.0, hg.Y(3))
}
