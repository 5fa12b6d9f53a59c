package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Empty()
	assert.InDelta(t, 20.12, cfg.GetPitchLengthM(), 1e-9)
	assert.InDelta(t, 3.05, cfg.GetPitchWidthM(), 1e-9)
	assert.InDelta(t, -1.0, cfg.GetDepthThresholdMM(), 1e-9)
	assert.InDelta(t, 1.0, cfg.GetEnergyMoveJ(), 1e-9)
	assert.InDelta(t, 10.0, cfg.GetEnergyRepairJ(), 1e-9)
	assert.Equal(t, int64(1), cfg.GetSeed())
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	tests := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{"non-negative threshold", func(c *SimConfig) { c.DepthThresholdMM = f(0) }},
		{"zero pitch length", func(c *SimConfig) { c.PitchLengthM = f(0) }},
		{"negative noise", func(c *SimConfig) { c.NoiseAmplitudeMM = f(-0.1) }},
		{"negative defects", func(c *SimConfig) { c.DefectCount = n(-1) }},
		{"zero row spacing", func(c *SimConfig) { c.RowSpacingCells = f(0) }},
		{"zero footprint", func(c *SimConfig) { c.FootprintHalfCells = n(0) }},
		{"negative move energy", func(c *SimConfig) { c.EnergyMoveJ = f(-1) }},
		{"row spacing wider than footprint", func(c *SimConfig) {
			c.RowSpacingCells = f(10)
			c.FootprintHalfCells = n(1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Empty()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadPartialConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sim.json")
	body := `{"depth_threshold_mm": -2.5, "defect_count": 3}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Named fields override; everything else keeps defaults.
	assert.InDelta(t, -2.5, cfg.GetDepthThresholdMM(), 1e-9)
	assert.Equal(t, 3, cfg.GetDefectCount())
	assert.InDelta(t, 20.12, cfg.GetPitchLengthM(), 1e-9)
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("wrong extension", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "sim.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"depth_threshold_mm": 1.0}`), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
