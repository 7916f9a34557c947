package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/pulsehealth/pulsehealth/internal/collect"
	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/internal/engine"
	"github.com/pulsehealth/pulsehealth/internal/history"
	"github.com/pulsehealth/pulsehealth/internal/store"
)

// pulsehealth is the one-shot CLI: collect a scan, analyze it against the
// stored history and baseline, and print the report as JSON. With
// -build-baseline it instead rebuilds the baseline from the full history.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	buildBaseline := flag.Bool("build-baseline", false, "rebuild the baseline from the stored history and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	hist := history.NewFile(cfg.Storage.HistoryPath)
	baselines := store.NewBaselineStore(cfg.Storage.BaselineDir)

	eng, err := engine.New(cfg, hist, baselines)
	if err != nil {
		slog.Error("failed to build analysis engine", "err", err)
		os.Exit(1)
	}

	if *buildBaseline {
		baseline, err := eng.RebuildBaseline()
		if err != nil {
			slog.Error("baseline rebuild failed", "err", err)
			os.Exit(1)
		}
		printJSON(baseline)
		return
	}

	scan, err := collect.New(cfg.Collector).Collect(context.Background())
	if err != nil {
		slog.Error("collect failed", "endpoint", cfg.Collector.Endpoint, "err", err)
		os.Exit(1)
	}

	report, err := eng.Analyze(scan)
	if err != nil {
		slog.Error("analysis failed", "err", err)
		os.Exit(1)
	}

	if err := hist.Append(scan); err != nil {
		slog.Error("history append failed", "err", err)
		os.Exit(1)
	}

	printJSON(report)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v) //nolint:errcheck
}
