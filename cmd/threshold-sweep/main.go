// Command threshold-sweep explores the depth-threshold / noise-amplitude
// parameter space: it runs repeated seeded simulations per combination,
// aggregates duty cycle, final roughness, and energy, and writes the table
// as CSV (and optionally into the run archive).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/greensward-robotics/pitchrover/internal/config"
	"github.com/greensward-robotics/pitchrover/internal/monitoring"
	"github.com/greensward-robotics/pitchrover/internal/rover"
	"github.com/greensward-robotics/pitchrover/internal/runstore"
	"github.com/greensward-robotics/pitchrover/internal/simmetrics"
)

func main() {
	thresholds := flag.String("thresholds", "-0.5,-1.0,-2.0", "Comma-separated depth thresholds (mm, negative)")
	noiseAmps := flag.String("noise", "0.1,0.2", "Comma-separated noise amplitudes (mm)")
	repeats := flag.Int("repeats", 5, "Seeded runs per parameter combination")
	csvPath := flag.String("csv", "", "Output CSV path (default stdout)")
	dbPath := flag.String("db", "", "Optional sqlite archive to record every run in")
	quiet := flag.Bool("quiet", true, "Suppress per-run diagnostic logging")
	flag.Parse()

	if *quiet {
		monitoring.SetLogger(nil)
	}

	ths, err := parseCSVFloat64s(*thresholds)
	if err != nil {
		log.Fatalf("invalid -thresholds: %v", err)
	}
	amps, err := parseCSVFloat64s(*noiseAmps)
	if err != nil {
		log.Fatalf("invalid -noise: %v", err)
	}
	if len(ths) == 0 || len(amps) == 0 || *repeats < 1 {
		log.Fatal("need at least one threshold, one noise amplitude, and one repeat")
	}

	var store *runstore.Store
	if *dbPath != "" {
		store, err = runstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer store.Close()
	}

	out := os.Stdout
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	cw := csv.NewWriter(out)
	defer cw.Flush()
	header := []string{
		"threshold_mm", "noise_mm", "repeats",
		"duty_cycle_pct_mean", "duty_cycle_pct_stddev",
		"final_rms_mm_mean", "final_rms_mm_stddev",
		"total_energy_j_mean", "total_energy_j_stddev",
	}
	if err := cw.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	for _, th := range ths {
		for _, amp := range amps {
			duty := make([]float64, 0, *repeats)
			rms := make([]float64, 0, *repeats)
			energy := make([]float64, 0, *repeats)

			for i := 0; i < *repeats; i++ {
				cfg := config.Empty()
				threshold, amplitude, seed := th, amp, int64(i+1)
				cfg.DepthThresholdMM = &threshold
				cfg.NoiseAmplitudeMM = &amplitude
				cfg.Seed = &seed

				scenario, err := rover.NewScenario(cfg)
				if err != nil {
					log.Fatalf("threshold %.2f noise %.2f: %v", th, amp, err)
				}
				res := scenario.Run()
				duty = append(duty, res.DutyCyclePct)
				rms = append(rms, res.FinalRMSMM)
				energy = append(energy, res.TotalEnergyJ)

				if store != nil {
					if err := store.InsertRun(res, scenario.Controller.Log(), cfg); err != nil {
						log.Fatalf("archive run: %v", err)
					}
				}
			}

			dutyMean, dutySD := simmetrics.MeanStddev(duty)
			rmsMean, rmsSD := simmetrics.MeanStddev(rms)
			energyMean, energySD := simmetrics.MeanStddev(energy)

			row := []string{
				fmt.Sprintf("%.3f", th),
				fmt.Sprintf("%.3f", amp),
				strconv.Itoa(*repeats),
				fmt.Sprintf("%.4f", dutyMean), fmt.Sprintf("%.4f", dutySD),
				fmt.Sprintf("%.6f", rmsMean), fmt.Sprintf("%.6f", rmsSD),
				fmt.Sprintf("%.2f", energyMean), fmt.Sprintf("%.2f", energySD),
			}
			if err := cw.Write(row); err != nil {
				log.Fatalf("write row: %v", err)
			}
		}
	}
}

// parseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings.
func parseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
