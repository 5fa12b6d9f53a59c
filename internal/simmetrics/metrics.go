// Package simmetrics derives roughness statistics from the live surface
// state. Every function is pure and recomputes from the full grid; nothing
// here accumulates, so the statistics cannot drift over an arbitrarily long
// step sequence.
package simmetrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/greensward-robotics/pitchrover/internal/surface"
)

// MeanAbsRoughness is the mean absolute height over the whole grid, in mm.
func MeanAbsRoughness(g *surface.Grid) float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	return floats.Norm(g.Cells, 1) / float64(len(g.Cells))
}

// RMSRoughness is the root-mean-square height over the whole grid, in mm.
func RMSRoughness(g *surface.Grid) float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	return floats.Norm(g.Cells, 2) / math.Sqrt(float64(len(g.Cells)))
}

// RMSOver computes RMS roughness over a footprint only. Used to verify that
// a repair pass restored a region to the noise floor.
func RMSOver(g *surface.Grid, f surface.Footprint) float64 {
	vals := g.ReadFootprint(f)
	if len(vals) == 0 {
		return 0
	}
	return floats.Norm(vals, 2) / math.Sqrt(float64(len(vals)))
}

// DutyCycle is the percentage of steps that triggered a repair. Returns 0
// for an empty run.
func DutyCycle(repairEvents, totalSteps int) float64 {
	if totalSteps <= 0 {
		return 0
	}
	return 100 * float64(repairEvents) / float64(totalSteps)
}

// MeanStddev returns the mean and sample standard deviation of a series.
// Used by the sweep tooling to aggregate repeated runs.
func MeanStddev(xs []float64) (mean, stddev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		stddev = stat.StdDev(xs, nil)
	}
	return mean, stddev
}
