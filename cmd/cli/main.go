package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"wind-storage-sim/internal/analysis"
	"wind-storage-sim/internal/config"
	"wind-storage-sim/internal/data"
	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/simulation"
	"wind-storage-sim/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/trace.csv --events results/events.csv")
	fmt.Println("  cli compare --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes one CSV row per hour with the forecast outcome and policy applied")
	fmt.Println("  - compare runs every strategy on the same inputs and ranks them by unmet energy")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/trace.csv", "Output trace CSV path")
	eventsPath := fs.String("events", "", "Optional: output events CSV path")
	strat := fs.String("strategy", "", "Optional: override strategy.name from the config")
	n := fs.Int("n", 0, "Optional: limit to first N hours (0=all)")
	_ = fs.Parse(args)

	cfg, series := mustLoad(*cfgPath, *n)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := simulation.RunConfig(ctx, cfg, series, *strat)
	if err != nil {
		fail(err)
	}

	mustWrite(*outPath, func(p string) error { return simulation.WriteTraceCSV(p, res.Trace) })
	fmt.Printf("Wrote %d rows to %s\n", len(res.Trace), *outPath)
	if *eventsPath != "" {
		mustWrite(*eventsPath, func(p string) error { return simulation.WriteEventsCSV(p, res.Stats) })
		fmt.Printf("Wrote %d events to %s\n",
			len(res.Stats.ShortageEvents)+len(res.Stats.CurtailmentEvents), *eventsPath)
	}

	s := analysis.Summarize(res)
	fmt.Printf("Strategy=%s Hours=%d\n", s.Strategy, s.Hours)
	fmt.Printf("Shortage: %d events, %.1f kWh total, %.1f kWh max\n", s.ShortageEvents, s.TotalShortageKWh, s.MaxShortageKWh)
	fmt.Printf("Curtailment: %d events, %.1f kWh total, %.1f kWh max\n", s.CurtailmentEvents, s.TotalCurtailmentKWh, s.MaxCurtailmentKWh)
	fmt.Printf("Predicted shortage hours=%d curtailment hours=%d\n", s.PredictedShortageHours, s.PredictedCurtailmentHours)
	fmt.Printf("Storage start=%.1f kWh final=%.1f kWh fill min=%.3f mean=%.3f p05=%.3f p95=%.3f\n",
		s.InitialStorageKWh, s.FinalStorageKWh, s.MinFill, s.MeanFill, s.P05Fill, s.P95Fill)
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	n := fs.Int("n", 0, "Optional: limit to first N hours (0=all)")
	_ = fs.Parse(args)

	cfg, series := mustLoad(*cfgPath, *n)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []*simulation.Result
	for _, name := range strategy.Names() {
		res, err := simulation.RunConfig(ctx, cfg, series, name)
		if err != nil {
			fail(err)
		}
		results = append(results, res)
	}

	ranked := analysis.RankByUnmetEnergy(results)
	fmt.Printf("%-4s %-10s %-8s %-14s %-8s %-14s %-10s\n", "rank", "strategy", "short#", "shortage kWh", "curt#", "curtail kWh", "mean fill")
	for i, s := range ranked {
		fmt.Printf("%-4d %-10s %-8d %-14.1f %-8d %-14.1f %-10.3f\n",
			i+1,
			s.Strategy,
			s.ShortageEvents,
			s.TotalShortageKWh,
			s.CurtailmentEvents,
			s.TotalCurtailmentKWh,
			s.MeanFill,
		)
	}
}

func mustLoad(cfgPath string, n int) (*config.Config, model.Series) {
	if cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fail(err)
	}

	series, err := data.Load(cfg.Data)
	if err != nil {
		fail(err)
	}
	return cfg, series.Truncate(n)
}

func mustWrite(path string, write func(string) error) {
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail(err)
	}
	if err := write(path); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
