// Package surface owns the pitch height map: a fixed-shape grid of depth
// samples in millimetres, the footprint read used by the rover's downward
// sensor, and the flatten mutation applied by the repair mechanism.
package surface

import "math/rand"

// Grid is a rectangular height map of the pitch surface. Heights are in
// millimetres relative to the nominal surface plane; negative values are
// depressions. Cells are stored row-major: idx = y*Width + x, with x across
// the pitch width and y along its length.
//
// The grid shape is fixed for the lifetime of a run. Values are overwritten
// in place by Flatten, which is the only mutator after initialisation.
type Grid struct {
	Width  int
	Length int
	Cells  []float64
}

// New allocates a zeroed grid of the given dimensions. Dimensions are
// clamped to a minimum of 1 cell per axis.
func New(width, length int) *Grid {
	if width < 1 {
		width = 1
	}
	if length < 1 {
		length = 1
	}
	return &Grid{
		Width:  width,
		Length: length,
		Cells:  make([]float64, width*length),
	}
}

// Idx returns the flat cell index for (x, y).
func (g *Grid) Idx(x, y int) int { return y*g.Width + x }

// At returns the height at (x, y). Bounds are the caller's responsibility.
func (g *Grid) At(x, y int) float64 { return g.Cells[g.Idx(x, y)] }

// FillNoise overwrites every cell with independent zero-mean uniform noise
// in [-amplitude, amplitude]. Used once at initialisation to model natural
// soil texture.
func (g *Grid) FillNoise(rng *rand.Rand, amplitude float64) {
	for i := range g.Cells {
		g.Cells[i] = (rng.Float64()*2 - 1) * amplitude
	}
}

// Footprint is an inclusive index range over the grid, already clipped to
// grid bounds. A Footprint produced by this package is never empty.
type Footprint struct {
	X0, X1 int // inclusive column range
	Y0, Y1 int // inclusive row range
}

// Cols returns the number of columns covered by the footprint.
func (f Footprint) Cols() int { return f.X1 - f.X0 + 1 }

// Rows returns the number of rows covered by the footprint.
func (f Footprint) Rows() int { return f.Y1 - f.Y0 + 1 }

// FootprintAt returns the sensor footprint centred on cell (cx, cy) with
// the given half-size, clipped to grid bounds. The centre itself is clamped
// into the grid first so a request at or beyond a corner still yields a
// non-empty range.
func (g *Grid) FootprintAt(cx, cy, half int) Footprint {
	cx = clampInt(cx, 0, g.Width-1)
	cy = clampInt(cy, 0, g.Length-1)
	return Footprint{
		X0: clampInt(cx-half, 0, g.Width-1),
		X1: clampInt(cx+half, 0, g.Width-1),
		Y0: clampInt(cy-half, 0, g.Length-1),
		Y1: clampInt(cy+half, 0, g.Length-1),
	}
}

// ClampCenter rounds a continuous path position to the nearest cell and
// clamps it so a footprint of the given half-size fits inside the grid.
// This is the rover's achievable position for an ideal path sample.
func (g *Grid) ClampCenter(x, y float64, half int) (cx, cy int) {
	cx = clampInt(roundToInt(x), half, g.Width-1-half)
	cy = clampInt(roundToInt(y), half, g.Length-1-half)
	// A grid narrower than the footprint leaves the clamp bounds inverted;
	// fall back to the nearest in-bounds cell and let FootprintAt clip.
	cx = clampInt(cx, 0, g.Width-1)
	cy = clampInt(cy, 0, g.Length-1)
	return cx, cy
}

// MinIn returns the minimum height inside the footprint. This is the
// per-step defect statistic: defects are always-negative depth offsets, so
// a one-sided minimum separates them from the zero-mean noise floor.
func (g *Grid) MinIn(f Footprint) float64 {
	min := g.At(f.X0, f.Y0)
	for y := f.Y0; y <= f.Y1; y++ {
		row := y * g.Width
		for x := f.X0; x <= f.X1; x++ {
			if v := g.Cells[row+x]; v < min {
				min = v
			}
		}
	}
	return min
}

// ReadFootprint copies the footprint values into a new slice, row by row.
// The copy keeps callers from aliasing grid storage.
func (g *Grid) ReadFootprint(f Footprint) []float64 {
	out := make([]float64, 0, f.Cols()*f.Rows())
	for y := f.Y0; y <= f.Y1; y++ {
		row := y * g.Width
		for x := f.X0; x <= f.X1; x++ {
			out = append(out, g.Cells[row+x])
		}
	}
	return out
}

// Flatten overwrites the footprint with fresh zero-mean noise at the given
// amplitude, modelling a repair pass that restores the region to baseline
// roughness. This is the only mutation applied to a grid after
// initialisation.
func (g *Grid) Flatten(f Footprint, rng *rand.Rand, amplitude float64) {
	for y := f.Y0; y <= f.Y1; y++ {
		row := y * g.Width
		for x := f.X0; x <= f.X1; x++ {
			g.Cells[row+x] = (rng.Float64()*2 - 1) * amplitude
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundToInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
