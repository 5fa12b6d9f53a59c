// Package coverage tracks which surface cells the sensor footprint has ever
// observed. The mask is append-only: cells once marked stay marked, so the
// reported percentage is non-decreasing across a run by construction.
package coverage

import "github.com/greensward-robotics/pitchrover/internal/surface"

// Tracker is a boolean mask with the same shape as the surface grid.
type Tracker struct {
	width  int
	length int
	mask   []bool
	marked int
}

// NewTracker creates a tracker for a width x length grid.
func NewTracker(width, length int) *Tracker {
	if width < 1 {
		width = 1
	}
	if length < 1 {
		length = 1
	}
	return &Tracker{
		width:  width,
		length: length,
		mask:   make([]bool, width*length),
	}
}

// MarkFootprint marks every cell in the footprint as covered. Marking is
// idempotent; re-visiting cells does not change the covered count.
func (t *Tracker) MarkFootprint(f surface.Footprint) {
	for y := f.Y0; y <= f.Y1; y++ {
		row := y * t.width
		for x := f.X0; x <= f.X1; x++ {
			if !t.mask[row+x] {
				t.mask[row+x] = true
				t.marked++
			}
		}
	}
}

// Covered reports whether cell (x, y) has ever been inside a footprint.
func (t *Tracker) Covered(x, y int) bool {
	if x < 0 || x >= t.width || y < 0 || y >= t.length {
		return false
	}
	return t.mask[y*t.width+x]
}

// Percent returns the fraction of cells ever covered, in [0, 100].
func (t *Tracker) Percent() float64 {
	return 100 * float64(t.marked) / float64(len(t.mask))
}
