package rover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensward-robotics/pitchrover/internal/config"
)

func TestNewScenarioDefaults(t *testing.T) {
	t.Parallel()

	s, err := NewScenario(config.Empty())
	require.NoError(t, err)

	assert.Positive(t, s.Grid.Width)
	assert.Positive(t, s.Grid.Length)
	assert.NotEmpty(t, s.Path)
	assert.NotEmpty(t, s.Defects)
}

func TestScenarioRunIsReproducible(t *testing.T) {
	t.Parallel()

	run := func() Result {
		s, err := NewScenario(config.Empty())
		require.NoError(t, err)
		return s.Run()
	}
	a, b := run(), run()

	// Same seed, same everything except the generated run ID.
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.RepairEvents, b.RepairEvents)
	assert.InDelta(t, a.TotalEnergyJ, b.TotalEnergyJ, 1e-12)
	assert.InDelta(t, a.FinalRMSMM, b.FinalRMSMM, 1e-12)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestScenarioRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Empty()
	bad := 0.5
	cfg.DepthThresholdMM = &bad // thresholds must be negative
	_, err := NewScenario(cfg)
	assert.Error(t, err)
}

func TestScenarioStepCountMatchesPath(t *testing.T) {
	t.Parallel()

	s, err := NewScenario(config.Empty())
	require.NoError(t, err)
	res := s.Run()
	assert.Equal(t, len(s.Path), res.Steps)
}
