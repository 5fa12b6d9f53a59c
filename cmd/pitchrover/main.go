// Command pitchrover runs one pitch repair simulation: it builds a noisy
// surface with random defects, sweeps it with the rover, and writes the
// step log, plots, and HTML report to an output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/greensward-robotics/pitchrover/internal/config"
	"github.com/greensward-robotics/pitchrover/internal/monitoring"
	"github.com/greensward-robotics/pitchrover/internal/report"
	"github.com/greensward-robotics/pitchrover/internal/rover"
	"github.com/greensward-robotics/pitchrover/internal/runstore"
	"github.com/greensward-robotics/pitchrover/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (optional; defaults apply)")
	outDir := flag.String("out", "out", "Output directory for CSV, plots, and report")
	dbPath := flag.String("db", "", "Optional sqlite archive to record the run in")
	seed := flag.Int64("seed", 0, "Override the config RNG seed (0 = use config)")
	plots := flag.Bool("plots", true, "Write PNG plots")
	html := flag.Bool("html", true, "Write the HTML report")
	quiet := flag.Bool("quiet", false, "Suppress diagnostic logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = seed
	}

	scenario, err := rover.NewScenario(cfg)
	if err != nil {
		log.Fatalf("build scenario: %v", err)
	}

	res := scenario.Run()
	stepLog := scenario.Controller.Log()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := writeCSVs(*outDir, res, stepLog); err != nil {
		log.Fatalf("write CSV: %v", err)
	}
	if *plots {
		n, err := report.GeneratePlots(*outDir, stepLog, scenario.Grid)
		if err != nil {
			log.Fatalf("generate plots: %v", err)
		}
		monitoring.Logf("wrote %d plots to %s", n, *outDir)
	}
	if *html {
		f, err := os.Create(filepath.Join(*outDir, "report.html"))
		if err != nil {
			log.Fatalf("create report: %v", err)
		}
		if err := report.WriteHTMLReport(f, res, stepLog, scenario.Grid); err != nil {
			f.Close()
			log.Fatalf("write report: %v", err)
		}
		f.Close()
	}
	if *dbPath != "" {
		store, err := runstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer store.Close()
		if err := store.InsertRun(res, stepLog, cfg); err != nil {
			log.Fatalf("archive run: %v", err)
		}
		monitoring.Logf("archived run %s to %s", res.RunID, *dbPath)
	}

	fmt.Printf("run %s: %d steps, %d repairs (duty %.2f%%), %.1f J, final RMS %.4f mm, coverage %.1f%%\n",
		res.RunID, res.Steps, res.RepairEvents, res.DutyCyclePct,
		res.TotalEnergyJ, res.FinalRMSMM, res.FinalCoverage)
}

func writeCSVs(outDir string, res rover.Result, stepLog []rover.StepRecord) error {
	steps, err := os.Create(filepath.Join(outDir, "steps.csv"))
	if err != nil {
		return err
	}
	defer steps.Close()
	if err := report.WriteStepLog(steps, stepLog); err != nil {
		return err
	}

	summary, err := os.Create(filepath.Join(outDir, "summary.csv"))
	if err != nil {
		return err
	}
	defer summary.Close()
	return report.WriteSummary(summary, res)
}
