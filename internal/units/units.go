// Package units provides shared constants and conversions between physical
// pitch dimensions (metres) and simulation grid cells.
package units

import "math"

// Standard cricket pitch dimensions. The playing strip is 22 yards long and
// 10 feet wide.
const (
	StandardPitchLengthM = 20.12
	StandardPitchWidthM  = 3.05
)

// CellsForMetres converts a physical span in metres to a whole number of
// grid cells at the given resolution. The result is rounded to the nearest
// cell and never less than 1 so a degenerate resolution cannot produce an
// empty grid axis.
func CellsForMetres(metres, cellsPerMetre float64) int {
	n := int(math.Round(metres * cellsPerMetre))
	if n < 1 {
		return 1
	}
	return n
}

// MetresForCells converts a cell count back to metres at the given
// resolution. Returns 0 for a non-positive resolution.
func MetresForCells(cells int, cellsPerMetre float64) float64 {
	if cellsPerMetre <= 0 {
		return 0
	}
	return float64(cells) / cellsPerMetre
}
