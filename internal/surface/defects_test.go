package surface

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefectsStaysInsideMargin(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	params := DefectParams{
		Count:      50,
		MinSize:    1,
		MaxSize:    3,
		MinDepthMM: 2.0,
		MaxDepthMM: 5.0,
		Margin:     2,
	}
	patches, err := GenerateDefects(rng, 16, 80, params)
	require.NoError(t, err)
	require.Len(t, patches, 50)

	for i, p := range patches {
		assert.GreaterOrEqual(t, p.X, params.Margin, "patch %d x", i)
		assert.GreaterOrEqual(t, p.Y, params.Margin, "patch %d y", i)
		assert.LessOrEqual(t, p.X+p.Width, 16-params.Margin, "patch %d right edge", i)
		assert.LessOrEqual(t, p.Y+p.Height, 80-params.Margin, "patch %d bottom edge", i)
		assert.GreaterOrEqual(t, p.Width, params.MinSize)
		assert.LessOrEqual(t, p.Width, params.MaxSize)
		assert.GreaterOrEqual(t, p.DepthMM, params.MinDepthMM)
		assert.LessOrEqual(t, p.DepthMM, params.MaxDepthMM)
	}
}

func TestDefectParamsValidate(t *testing.T) {
	t.Parallel()

	valid := DefectParams{Count: 3, MinSize: 1, MaxSize: 2, MinDepthMM: 1, MaxDepthMM: 2, Margin: 1}

	tests := []struct {
		name   string
		mutate func(*DefectParams)
	}{
		{"negative count", func(p *DefectParams) { p.Count = -1 }},
		{"zero min size", func(p *DefectParams) { p.MinSize = 0 }},
		{"inverted size range", func(p *DefectParams) { p.MinSize = 3; p.MaxSize = 2 }},
		{"inverted depth range", func(p *DefectParams) { p.MinDepthMM = 5; p.MaxDepthMM = 2 }},
		{"patch too large for grid", func(p *DefectParams) { p.MaxSize = 20 }},
		{"margin swallows grid", func(p *DefectParams) { p.Margin = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate(16, 20))
		})
	}

	assert.NoError(t, valid.Validate(16, 20))
}

func TestBuildCarvesDefectsBelowNoise(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(9))
	defects := []DefectPatch{{X: 4, Y: 10, Width: 2, Height: 2, DepthMM: 3.0}}
	g := Build(rng, 16, 40, 0.1, defects)

	// Every carved cell sits at least depth-amplitude below the plane.
	for y := 10; y < 12; y++ {
		for x := 4; x < 6; x++ {
			assert.Less(t, g.At(x, y), -2.9, "cell (%d,%d)", x, y)
		}
	}
}
