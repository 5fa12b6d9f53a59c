package surface

import (
	"fmt"
	"math/rand"
)

// DefectPatch is a rectangular depression carved into the surface during
// initialisation. Coordinates are in grid cells; DepthMM is the magnitude
// subtracted from every cell in the patch (heights become more negative).
// Patches exist only during setup and are not retained by the grid.
type DefectPatch struct {
	X, Y          int
	Width, Height int
	DepthMM       float64
}

// Carve subtracts the patch depth from every cell it covers. The patch is
// clipped to grid bounds so a mis-generated patch cannot index outside the
// grid.
func (g *Grid) Carve(p DefectPatch) {
	x1 := clampInt(p.X+p.Width-1, 0, g.Width-1)
	y1 := clampInt(p.Y+p.Height-1, 0, g.Length-1)
	for y := clampInt(p.Y, 0, g.Length-1); y <= y1; y++ {
		row := y * g.Width
		for x := clampInt(p.X, 0, g.Width-1); x <= x1; x++ {
			g.Cells[row+x] -= p.DepthMM
		}
	}
}

// DefectParams configures the random defect generator.
type DefectParams struct {
	Count int
	// Patch edge lengths are drawn uniformly from [MinSize, MaxSize] cells.
	MinSize, MaxSize int
	// Depth magnitudes are drawn uniformly from [MinDepthMM, MaxDepthMM].
	MinDepthMM, MaxDepthMM float64
	// Margin keeps every patch at least this many cells from the grid edge,
	// so a footprint centred on the patch never straddles the boundary.
	Margin int
}

// Validate rejects parameter combinations that cannot place a patch fully
// inside a grid of the given dimensions.
func (p DefectParams) Validate(width, length int) error {
	if p.Count < 0 {
		return fmt.Errorf("defect count must be non-negative, got %d", p.Count)
	}
	if p.MinSize < 1 || p.MaxSize < p.MinSize {
		return fmt.Errorf("invalid defect size range [%d, %d]", p.MinSize, p.MaxSize)
	}
	if p.MinDepthMM < 0 || p.MaxDepthMM < p.MinDepthMM {
		return fmt.Errorf("invalid defect depth range [%f, %f]", p.MinDepthMM, p.MaxDepthMM)
	}
	if width-2*p.Margin < p.MaxSize || length-2*p.Margin < p.MaxSize {
		return fmt.Errorf("defect of size %d with margin %d cannot fit a %dx%d grid",
			p.MaxSize, p.Margin, width, length)
	}
	return nil
}

// GenerateDefects produces Count random patches that fit fully inside a
// width x length grid with the configured safety margin. The caller owns
// the RNG so runs are reproducible from a seed.
func GenerateDefects(rng *rand.Rand, width, length int, p DefectParams) ([]DefectPatch, error) {
	if err := p.Validate(width, length); err != nil {
		return nil, err
	}
	patches := make([]DefectPatch, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		w := p.MinSize + rng.Intn(p.MaxSize-p.MinSize+1)
		h := p.MinSize + rng.Intn(p.MaxSize-p.MinSize+1)
		maxX := width - p.Margin - w
		maxY := length - p.Margin - h
		patch := DefectPatch{
			X:       p.Margin + rng.Intn(maxX-p.Margin+1),
			Y:       p.Margin + rng.Intn(maxY-p.Margin+1),
			Width:   w,
			Height:  h,
			DepthMM: p.MinDepthMM + rng.Float64()*(p.MaxDepthMM-p.MinDepthMM),
		}
		patches = append(patches, patch)
	}
	return patches, nil
}

// Build constructs a surface ready for a run: base noise at the given
// amplitude plus every supplied defect patch.
func Build(rng *rand.Rand, width, length int, noiseAmplitude float64, defects []DefectPatch) *Grid {
	g := New(width, length)
	g.FillNoise(rng, noiseAmplitude)
	for _, d := range defects {
		g.Carve(d)
	}
	return g
}
