package surface

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClampsDimensions(t *testing.T) {
	t.Parallel()

	g := New(0, -3)
	assert.Equal(t, 1, g.Width)
	assert.Equal(t, 1, g.Length)
	assert.Len(t, g.Cells, 1)
}

func TestFillNoiseBounds(t *testing.T) {
	t.Parallel()

	g := New(16, 40)
	rng := rand.New(rand.NewSource(7))
	g.FillNoise(rng, 0.25)

	for i, v := range g.Cells {
		if math.Abs(v) > 0.25 {
			t.Fatalf("cell %d = %f outside noise amplitude 0.25", i, v)
		}
	}
}

func TestFootprintAtCorner(t *testing.T) {
	t.Parallel()

	g := New(20, 8)

	t.Run("origin corner is clipped and non-empty", func(t *testing.T) {
		fp := g.FootprintAt(0, 0, 2)
		assert.Equal(t, 0, fp.X0)
		assert.Equal(t, 2, fp.X1)
		assert.Equal(t, 0, fp.Y0)
		assert.Equal(t, 2, fp.Y1)
		assert.Equal(t, 9, fp.Cols()*fp.Rows())
	})

	t.Run("far corner is clipped and non-empty", func(t *testing.T) {
		fp := g.FootprintAt(19, 7, 2)
		assert.Equal(t, 17, fp.X0)
		assert.Equal(t, 19, fp.X1)
		assert.Equal(t, 5, fp.Y0)
		assert.Equal(t, 7, fp.Y1)
	})

	t.Run("out-of-range centre is clamped into the grid", func(t *testing.T) {
		fp := g.FootprintAt(-10, 100, 1)
		assert.GreaterOrEqual(t, fp.X0, 0)
		assert.Less(t, fp.X1, g.Width)
		assert.GreaterOrEqual(t, fp.Y0, 0)
		assert.Less(t, fp.Y1, g.Length)
		assert.GreaterOrEqual(t, fp.Cols()*fp.Rows(), 1)
	})
}

func TestClampCenter(t *testing.T) {
	t.Parallel()

	g := New(20, 8)

	tests := []struct {
		name  string
		x, y  float64
		half  int
		wantX int
		wantY int
	}{
		{"interior rounds to nearest", 5.4, 3.6, 1, 5, 4},
		{"origin clamps to half", 0, 0, 2, 2, 2},
		{"far edge clamps inside footprint reach", 19.9, 7.9, 2, 17, 5},
		{"negative position clamps to half", -4.2, -1.0, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := g.ClampCenter(tt.x, tt.y, tt.half)
			assert.Equal(t, tt.wantX, cx)
			assert.Equal(t, tt.wantY, cy)
		})
	}
}

func TestMinInFindsCarvedDefect(t *testing.T) {
	t.Parallel()

	g := New(20, 8)
	g.Carve(DefectPatch{X: 10, Y: 3, Width: 2, Height: 2, DepthMM: 3.0})

	full := Footprint{X0: 0, X1: 19, Y0: 0, Y1: 7}
	assert.InDelta(t, -3.0, g.MinIn(full), 1e-12)

	// A footprint away from the patch sees only the flat baseline.
	away := g.FootprintAt(2, 2, 1)
	assert.InDelta(t, 0.0, g.MinIn(away), 1e-12)
}

func TestReadFootprintCopies(t *testing.T) {
	t.Parallel()

	g := New(6, 6)
	g.Cells[g.Idx(2, 2)] = -1.5

	fp := g.FootprintAt(2, 2, 1)
	vals := g.ReadFootprint(fp)
	require.Len(t, vals, 9)

	// Mutating the copy must not touch grid storage.
	vals[0] = 99
	assert.InDelta(t, -1.5, g.At(2, 2), 1e-12)
}

func TestFlattenRemovesDefect(t *testing.T) {
	t.Parallel()

	g := New(20, 8)
	rng := rand.New(rand.NewSource(11))
	g.FillNoise(rng, 0.05)
	g.Carve(DefectPatch{X: 9, Y: 3, Width: 2, Height: 2, DepthMM: 3.0})

	fp := g.FootprintAt(10, 4, 2)
	require.Less(t, g.MinIn(fp), -1.0, "defect should trip the threshold before repair")

	g.Flatten(fp, rng, 0.05)

	for y := fp.Y0; y <= fp.Y1; y++ {
		for x := fp.X0; x <= fp.X1; x++ {
			if math.Abs(g.At(x, y)) > 0.05 {
				t.Fatalf("cell (%d,%d) = %f above noise floor after flatten", x, y, g.At(x, y))
			}
		}
	}
	assert.GreaterOrEqual(t, g.MinIn(fp), -0.05)
}
