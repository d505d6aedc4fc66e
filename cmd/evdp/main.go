// Command evdp is a thin host driver: positional subcommand dispatch over
// the core scheduling engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/analysis"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/config"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/csvio"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/evrand"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  evdp solve --activities activities.csv --config config.yaml --out schedule.csv [--initial-soc 0.8] [--seed 1] [--min-soc 0.1]")
	fmt.Println("")
	fmt.Println("exit codes: 0 success, 1 infeasible, 2 I/O or parameter error")
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	activitiesPath := fs.String("activities", "", "Path to activities CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/schedule.csv", "Output schedule CSV path")
	initialSoC := fs.Float64("initial-soc", -1, "Starting SoC in [0,1]; if unset and --seed is given, sampled")
	seed := fs.Uint64("seed", 0, "Random seed for stochastic initial-SoC sampling")
	socMean := fs.Float64("soc-mean", 0.8, "Mean SoC for --seed sampling")
	socStdDev := fs.Float64("soc-stddev", 0.1, "SoC stddev for --seed sampling")
	minSoCCutoff := fs.Float64("min-soc", 0, "Reject the solve result if final SoC falls below this")
	_ = fs.Parse(args)

	if *activitiesPath == "" || *cfgPath == "" {
		fmt.Println("--activities and --config are required")
		os.Exit(2)
	}

	activities, err := csvio.ReadActivities(*activitiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load activities: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	params, err := cfg.GeneralParams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config invalid: %v\n", err)
		os.Exit(2)
	}

	soc := *initialSoC
	if soc < 0 {
		if *seed != 0 {
			src := evrand.NewSource(*seed)
			soc = src.ClampedSoC(*socMean, *socStdDev)
		} else {
			soc = cfg.Battery.InitialSoC
		}
	}

	solver, err := engine.NewSolver(activities, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solver setup: %v\n", err)
		os.Exit(2)
	}

	sched, err := solver.Solve(soc)
	if serr, ok := err.(*engine.SolveError); ok && serr.Kind == engine.Infeasible {
		fmt.Fprintf(os.Stderr, "no feasible schedule: %v\n", serr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "solve error: %v\n", err)
		os.Exit(2)
	}

	if *minSoCCutoff > 0 && sched.FinalSoC < *minSoCCutoff {
		fmt.Fprintf(os.Stderr, "final SoC %.3f below cutoff %.3f\n", sched.FinalSoC, *minSoCCutoff)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(2)
	}
	if err := csvio.WriteSchedule(*outPath, sched); err != nil {
		fmt.Fprintf(os.Stderr, "write schedule: %v\n", err)
		os.Exit(2)
	}

	m := analysis.Compute(sched)
	fmt.Printf("Wrote %d steps to %s\n", m.StepCount, *outPath)
	fmt.Printf("Final utility=%.3f Final SoC=%.3f Charge cost=$%.2f\n", m.FinalUtility, m.FinalSoC, m.TotalChargeCost)
	if m.PossiblyNonElementary {
		fmt.Println("warning: DSSR iteration cap hit; schedule may not be elementary")
	}
}
