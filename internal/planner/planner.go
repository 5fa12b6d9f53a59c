// Package planner produces the rover's coverage trajectory: a boustrophedon
// sweep over the pitch expressed as waypoints, then densified into
// unit-resolution path samples for the control loop.
package planner

import (
	"fmt"
	"math"
)

// Waypoint is a continuous position in grid-cell units. X runs across the
// pitch width, Y along its length.
type Waypoint struct {
	X, Y float64
}

// Plan generates a back-and-forth sweep covering a width x length area.
// Rows are laid out from margin to length-margin at rowSpacing intervals;
// even-indexed rows run left to right, odd-indexed rows right to left so
// consecutive rows join without a long transit.
//
// rowSpacing must be smaller than the sensor footprint diameter. The
// difference is the overlap margin: with spacing equal to the diameter, a
// defect sitting exactly between two sweep rows could escape both
// footprints. Callers size the spacing; Plan only rejects geometry that
// admits no rows at all.
func Plan(width, length, rowSpacing, margin float64) ([]Waypoint, error) {
	if rowSpacing <= 0 {
		return nil, fmt.Errorf("row spacing must be positive, got %f", rowSpacing)
	}
	if 2*margin >= length {
		return nil, fmt.Errorf("margin %f leaves no sweep span on a length-%f area", margin, length)
	}
	if 2*margin >= width {
		return nil, fmt.Errorf("margin %f leaves no sweep span on a width-%f area", margin, width)
	}

	left := margin
	right := width - margin

	var wps []Waypoint
	row := 0
	// When rowSpacing does not divide the sweep span evenly the final row
	// falls short of length-margin; full coverage is the overlap margin's
	// job, not an extra irregular row's.
	for y := margin; y <= length-margin+1e-9; y += rowSpacing {
		if row%2 == 0 {
			wps = append(wps, Waypoint{X: left, Y: y}, Waypoint{X: right, Y: y})
		} else {
			wps = append(wps, Waypoint{X: right, Y: y}, Waypoint{X: left, Y: y})
		}
		row++
	}
	return wps, nil
}

// Interpolate densifies a waypoint sequence into path samples no more than
// one cell unit apart. Each leg contributes ceil(distance) samples (minimum
// one, so duplicate waypoints degenerate to a single sample rather than a
// division by zero), and the final waypoint closes the path. Waypoint order
// is preserved; the result is finite and consumed exactly once per run.
func Interpolate(wps []Waypoint) []Waypoint {
	if len(wps) == 0 {
		return nil
	}
	var path []Waypoint
	for i := 0; i < len(wps)-1; i++ {
		a, b := wps[i], wps[i+1]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		n := int(math.Ceil(dist))
		if n < 1 {
			n = 1
		}
		for s := 0; s < n; s++ {
			t := float64(s) / float64(n)
			path = append(path, Waypoint{
				X: a.X + (b.X-a.X)*t,
				Y: a.Y + (b.Y-a.Y)*t,
			})
		}
	}
	path = append(path, wps[len(wps)-1])
	return path
}
