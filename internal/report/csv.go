// Package report renders a completed run for external consumers: CSV step
// logs, PNG plots, and a self-contained HTML report. Nothing in here feeds
// back into the simulation; the core only produces, report only consumes.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/greensward-robotics/pitchrover/internal/rover"
)

// WriteStepLog writes the per-step run log as CSV, one row per path sample.
func WriteStepLog(w io.Writer, log []rover.StepRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"step", "mode", "energy_j", "coverage_pct", "mean_abs_mm", "rms_mm"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range log {
		row := []string{
			fmt.Sprintf("%d", rec.Step),
			rec.Mode.String(),
			fmt.Sprintf("%.6f", rec.EnergyJ),
			fmt.Sprintf("%.4f", rec.CoveragePct),
			fmt.Sprintf("%.6f", rec.MeanAbsMM),
			fmt.Sprintf("%.6f", rec.RMSMM),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write step %d: %w", rec.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes a single-row CSV of the run summary.
func WriteSummary(w io.Writer, res rover.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"run_id", "steps", "repair_events", "total_energy_j",
		"duty_cycle_pct", "final_rms_mm", "final_mean_abs_mm", "final_coverage_pct",
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.Write([]string{
		res.RunID,
		fmt.Sprintf("%d", res.Steps),
		fmt.Sprintf("%d", res.RepairEvents),
		fmt.Sprintf("%.6f", res.TotalEnergyJ),
		fmt.Sprintf("%.4f", res.DutyCyclePct),
		fmt.Sprintf("%.6f", res.FinalRMSMM),
		fmt.Sprintf("%.6f", res.FinalMeanAbsMM),
		fmt.Sprintf("%.4f", res.FinalCoverage),
	}); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
