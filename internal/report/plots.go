package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/greensward-robotics/pitchrover/internal/rover"
	"github.com/greensward-robotics/pitchrover/internal/surface"
)

// GeneratePlots writes the standard per-run PNGs into outputDir: cumulative
// energy, RMS roughness, and coverage over steps, plus the final surface
// heightmap. Returns the number of plots written.
func GeneratePlots(outputDir string, log []rover.StepRecord, grid *surface.Grid) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	count := 0
	series := []struct {
		file, title, yLabel string
		value               func(rover.StepRecord) float64
	}{
		{"energy.png", "Cumulative Energy", "Energy (J)",
			func(r rover.StepRecord) float64 { return r.EnergyJ }},
		{"rms_roughness.png", "RMS Roughness", "RMS (mm)",
			func(r rover.StepRecord) float64 { return r.RMSMM }},
		{"coverage.png", "Coverage", "Coverage (%)",
			func(r rover.StepRecord) float64 { return r.CoveragePct }},
	}
	for _, s := range series {
		if err := saveSeriesPlot(filepath.Join(outputDir, s.file), s.title, s.yLabel, log, s.value); err != nil {
			return count, err
		}
		count++
	}

	if err := saveHeightmap(filepath.Join(outputDir, "surface.png"), grid); err != nil {
		return count, err
	}
	count++
	return count, nil
}

func saveSeriesPlot(path, title, yLabel string, log []rover.StepRecord, value func(rover.StepRecord) float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, 0, len(log))
	for _, rec := range log {
		pts = append(pts, plotter.XY{X: float64(rec.Step), Y: value(rec)})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", title, err)
	}
	return nil
}

func saveHeightmap(path string, grid *surface.Grid) error {
	p := plot.New()
	p.Title.Text = "Surface Height (mm)"
	p.X.Label.Text = "X (cells)"
	p.Y.Label.Text = "Y (cells)"

	hm := plotter.NewHeatMap(heightGrid{grid}, palette.Heat(12, 1))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save heightmap: %w", err)
	}
	return nil
}

// heightGrid adapts a surface.Grid to plotter.GridXYZ.
type heightGrid struct {
	g *surface.Grid
}

func (h heightGrid) Dims() (c, r int)   { return h.g.Width, h.g.Length }
func (h heightGrid) Z(c, r int) float64 { return h.g.At(c, r) }
func (h heightGrid) X(c int) float64    { return float64(c) }
func (h heightGrid) Y(r int) float64    { return float64(r) }
