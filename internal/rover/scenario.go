package rover

import (
	"fmt"
	"math/rand"

	"github.com/greensward-robotics/pitchrover/internal/config"
	"github.com/greensward-robotics/pitchrover/internal/coverage"
	"github.com/greensward-robotics/pitchrover/internal/monitoring"
	"github.com/greensward-robotics/pitchrover/internal/planner"
	"github.com/greensward-robotics/pitchrover/internal/surface"
	"github.com/greensward-robotics/pitchrover/internal/units"
)

// Scenario is a fully assembled run: surface, path, and controller, built
// from one config and one seed. The grid and the log live exactly as long
// as the scenario.
type Scenario struct {
	Grid       *surface.Grid
	Defects    []surface.DefectPatch
	Path       []planner.Waypoint
	Coverage   *coverage.Tracker
	Controller *Controller
}

// NewScenario builds a scenario from the config. All randomness (noise,
// defect placement, repair re-noising) flows from the config seed, so the
// same config reproduces the same run.
func NewScenario(cfg *config.SimConfig) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.GetSeed()))

	width := units.CellsForMetres(cfg.GetPitchWidthM(), cfg.GetCellsPerMetre())
	length := units.CellsForMetres(cfg.GetPitchLengthM(), cfg.GetCellsPerMetre())

	defects, err := surface.GenerateDefects(rng, width, length, surface.DefectParams{
		Count:      cfg.GetDefectCount(),
		MinSize:    cfg.GetDefectMinSize(),
		MaxSize:    cfg.GetDefectMaxSize(),
		MinDepthMM: cfg.GetDefectMinDepthMM(),
		MaxDepthMM: cfg.GetDefectMaxDepthMM(),
		Margin:     cfg.GetDefectMarginCells(),
	})
	if err != nil {
		return nil, fmt.Errorf("defect generation: %w", err)
	}

	grid := surface.Build(rng, width, length, cfg.GetNoiseAmplitudeMM(), defects)

	wps, err := planner.Plan(float64(width), float64(length),
		cfg.GetRowSpacingCells(), cfg.GetPathMarginCells())
	if err != nil {
		return nil, fmt.Errorf("path planning: %w", err)
	}
	path := planner.Interpolate(wps)

	cov := coverage.NewTracker(width, length)
	ctl := NewController(grid, cov, Params{
		FootprintHalf:    cfg.GetFootprintHalfCells(),
		DepthThresholdMM: cfg.GetDepthThresholdMM(),
		EnergyMoveJ:      cfg.GetEnergyMoveJ(),
		EnergyRepairJ:    cfg.GetEnergyRepairJ(),
		NoiseAmplitudeMM: cfg.GetNoiseAmplitudeMM(),
	}, rng)

	monitoring.Logf("scenario: %dx%d cells, %d defects, %d waypoints, %d path samples",
		width, length, len(defects), len(wps), len(path))

	return &Scenario{
		Grid:       grid,
		Defects:    defects,
		Path:       path,
		Coverage:   cov,
		Controller: ctl,
	}, nil
}

// Run executes the scenario's full path and returns the summary.
func (s *Scenario) Run() Result {
	return s.Controller.Run(s.Path)
}
