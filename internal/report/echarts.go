package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/greensward-robotics/pitchrover/internal/rover"
	"github.com/greensward-robotics/pitchrover/internal/surface"
)

// WriteHTMLReport renders a single self-contained HTML page: the final
// surface as a coloured scatter plus line charts of energy, roughness, and
// coverage over the run.
func WriteHTMLReport(w io.Writer, res rover.Result, log []rover.StepRecord, grid *surface.Grid) error {
	page := components.NewPage()
	page.PageTitle = "pitchrover run report"

	page.AddCharts(
		surfaceChart(grid, res),
		seriesChart("Cumulative Energy (J)", log, func(r rover.StepRecord) float64 { return r.EnergyJ }),
		seriesChart("RMS Roughness (mm)", log, func(r rover.StepRecord) float64 { return r.RMSMM }),
		seriesChart("Coverage (%)", log, func(r rover.StepRecord) float64 { return r.CoveragePct }),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// surfaceChart draws every grid cell as a coloured point, height mapped
// through the visual map so depressions stand out against the noise floor.
func surfaceChart(grid *surface.Grid, res rover.Result) components.Charter {
	data := make([]opts.ScatterData, 0, len(grid.Cells))
	min, max := 0.0, 0.0
	for y := 0; y < grid.Length; y++ {
		for x := 0; x < grid.Width; x++ {
			v := grid.At(x, y)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.ScatterData{Value: []interface{}{x, y, v}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "500px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Final Surface Height (mm)",
			Subtitle: fmt.Sprintf("run=%s repairs=%d duty=%.2f%%", res.RunID, res.RepairEvents, res.DutyCyclePct),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -1, Max: grid.Width, Name: "X (cells)"}),
		charts.WithYAxisOpts(opts.YAxis{Min: -1, Max: grid.Length, Name: "Y (cells)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: []string{"#d73027", "#fee090", "#1a9850"}},
		}),
	)
	scatter.AddSeries("height", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}

func seriesChart(title string, log []rover.StepRecord, value func(rover.StepRecord) float64) components.Charter {
	xs := make([]int, 0, len(log))
	ys := make([]opts.LineData, 0, len(log))
	for _, rec := range log {
		xs = append(xs, rec.Step)
		ys = append(ys, opts.LineData{Value: value(rec)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "300px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Step"}),
	)
	line.SetXAxis(xs).AddSeries(title, ys)
	return line
}
