// Package runstore archives completed run summaries and step logs in a
// local sqlite database so sweep tooling can compare parameter choices
// across runs. The archive is write-only from the simulator's point of
// view: the core loop never reads it back, and no simulation state (the
// grid itself) is ever persisted.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/greensward-robotics/pitchrover/internal/rover"
)

// Store wraps the archive database.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the archive at path and applies any pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// RunRow is one archived run summary.
type RunRow struct {
	RunID          string
	CreatedUnix    int64
	Steps          int
	RepairEvents   int
	TotalEnergyJ   float64
	DutyCyclePct   float64
	FinalRMSMM     float64
	FinalMeanAbsMM float64
	FinalCoverage  float64
	ParamsJSON     string
}

// InsertRun archives a run summary plus its full step log. params may be
// any JSON-serialisable description of the configuration that produced the
// run; it is stored verbatim for later comparison.
func (s *Store) InsertRun(res rover.Result, log []rover.StepRecord, params interface{}) error {
	paramsJSON := "{}"
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		paramsJSON = string(b)
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_unix, steps, repair_events, total_energy_j,
		 duty_cycle_pct, final_rms_mm, final_mean_abs_mm, final_coverage_pct, params_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, time.Now().Unix(), res.Steps, res.RepairEvents, res.TotalEnergyJ,
		res.DutyCyclePct, res.FinalRMSMM, res.FinalMeanAbsMM, res.FinalCoverage, paramsJSON)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_steps
		(run_id, step, repaired, energy_j, coverage_pct, mean_abs_mm, rms_mm)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare steps: %w", err)
	}
	defer stmt.Close()
	for _, rec := range log {
		repaired := 0
		if rec.Mode == rover.Repairing {
			repaired = 1
		}
		if _, err := stmt.Exec(res.RunID, rec.Step, repaired,
			rec.EnergyJ, rec.CoveragePct, rec.MeanAbsMM, rec.RMSMM); err != nil {
			return fmt.Errorf("insert step %d: %w", rec.Step, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns archived run summaries, newest first.
func (s *Store) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Query(`SELECT run_id, created_unix, steps, repair_events,
		total_energy_j, duty_cycle_pct, final_rms_mm, final_mean_abs_mm,
		final_coverage_pct, params_json
		FROM runs ORDER BY created_unix DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.RunID, &r.CreatedUnix, &r.Steps, &r.RepairEvents,
			&r.TotalEnergyJ, &r.DutyCyclePct, &r.FinalRMSMM, &r.FinalMeanAbsMM,
			&r.FinalCoverage, &r.ParamsJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StepCount returns the number of archived step rows for a run.
func (s *Store) StepCount(runID string) (int, error) {
	var n int
	err := s.QueryRow(`SELECT COUNT(*) FROM run_steps WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count steps: %w", err)
	}
	return n, nil
}
