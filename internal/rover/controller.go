// Package rover implements the inspect-and-repair control loop: it walks
// the planned path one sample at a time, classifies the sensor footprint
// against a depth threshold, actuates the repair mechanism on detection,
// and keeps the per-step run log numerically consistent over the whole
// path.
package rover

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/greensward-robotics/pitchrover/internal/coverage"
	"github.com/greensward-robotics/pitchrover/internal/planner"
	"github.com/greensward-robotics/pitchrover/internal/simmetrics"
	"github.com/greensward-robotics/pitchrover/internal/surface"
)

// Mode is the controller's per-step state. Repairing is transient: the
// controller decides it fresh each step and collapses back to Moving within
// the same step, so it is a decision outcome, not a persisted mode.
type Mode int

const (
	Moving Mode = iota
	Repairing
)

func (m Mode) String() string {
	if m == Repairing {
		return "repairing"
	}
	return "moving"
}

// Params holds the controller's tuning constants.
type Params struct {
	// FootprintHalf is the sensor footprint half-size in cells; the
	// footprint spans 2*FootprintHalf+1 cells per axis before clipping.
	FootprintHalf int
	// DepthThresholdMM classifies footprints: a minimum depth below this
	// (more negative) is a defect. Set deeper than the noise amplitude's
	// expected minimum or natural texture will trigger false repairs.
	DepthThresholdMM float64
	// Energy cost per step, and the surcharge for a repair actuation, in J.
	EnergyMoveJ   float64
	EnergyRepairJ float64
	// NoiseAmplitudeMM is the baseline roughness restored by a repair pass.
	NoiseAmplitudeMM float64
}

// StepRecord is one entry of the run log, appended exactly once per path
// sample.
type StepRecord struct {
	Step        int
	Mode        Mode
	EnergyJ     float64 // cumulative
	CoveragePct float64
	MeanAbsMM   float64
	RMSMM       float64
}

// RunState accumulates over a run. It is owned exclusively by the
// controller; callers read it through Snapshot or the returned result.
type RunState struct {
	EnergyJ      float64
	RepairEvents int
	Log          []StepRecord
}

// Result summarises a completed run.
type Result struct {
	RunID          string
	Steps          int
	RepairEvents   int
	TotalEnergyJ   float64
	DutyCyclePct   float64
	FinalRMSMM     float64
	FinalMeanAbsMM float64
	FinalCoverage  float64
	DepthThreshold float64
	NoiseAmplitude float64
}

// Controller drives one rover over one surface. It owns the grid mutation
// and the run log; nothing else writes either during a run.
type Controller struct {
	grid   *surface.Grid
	cov    *coverage.Tracker
	params Params
	rng    *rand.Rand
	state  RunState
}

// NewController wires a controller to its surface and coverage tracker.
// The RNG is the caller's so a whole run replays from one seed.
func NewController(g *surface.Grid, cov *coverage.Tracker, params Params, rng *rand.Rand) *Controller {
	return &Controller{grid: g, cov: cov, params: params, rng: rng}
}

// Step processes a single path sample: clamp the position, mark coverage,
// read the footprint, decide, optionally flatten, and append to the log.
// Out-of-range positions are clamped rather than rejected; the controller
// never aborts a run because of planner geometry.
func (c *Controller) Step(pos planner.Waypoint) StepRecord {
	cx, cy := c.grid.ClampCenter(pos.X, pos.Y, c.params.FootprintHalf)
	fp := c.grid.FootprintAt(cx, cy, c.params.FootprintHalf)
	c.cov.MarkFootprint(fp)

	mode := Moving
	cost := c.params.EnergyMoveJ
	if c.grid.MinIn(fp) < c.params.DepthThresholdMM {
		mode = Repairing
		c.grid.Flatten(fp, c.rng, c.params.NoiseAmplitudeMM)
		cost += c.params.EnergyRepairJ
		c.state.RepairEvents++
	}
	c.state.EnergyJ += cost

	rec := StepRecord{
		Step:        len(c.state.Log),
		Mode:        mode,
		EnergyJ:     c.state.EnergyJ,
		CoveragePct: c.cov.Percent(),
		MeanAbsMM:   simmetrics.MeanAbsRoughness(c.grid),
		RMSMM:       simmetrics.RMSRoughness(c.grid),
	}
	c.state.Log = append(c.state.Log, rec)
	return rec
}

// Run consumes the whole path in order and returns the summary. The path is
// finite and processed to completion; there is no error path out of the
// loop.
func (c *Controller) Run(path []planner.Waypoint) Result {
	for _, pos := range path {
		c.Step(pos)
	}
	return Result{
		RunID:          uuid.NewString(),
		Steps:          len(c.state.Log),
		RepairEvents:   c.state.RepairEvents,
		TotalEnergyJ:   c.state.EnergyJ,
		DutyCyclePct:   simmetrics.DutyCycle(c.state.RepairEvents, len(c.state.Log)),
		FinalRMSMM:     simmetrics.RMSRoughness(c.grid),
		FinalMeanAbsMM: simmetrics.MeanAbsRoughness(c.grid),
		FinalCoverage:  c.cov.Percent(),
		DepthThreshold: c.params.DepthThresholdMM,
		NoiseAmplitude: c.params.NoiseAmplitudeMM,
	}
}

// Log returns the per-step record sequence accumulated so far.
func (c *Controller) Log() []StepRecord { return c.state.Log }

// State returns a copy of the cumulative counters.
func (c *Controller) State() RunState {
	s := c.state
	return s
}
