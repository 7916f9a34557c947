package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulsehealth/pulsehealth/internal/api"
	"github.com/pulsehealth/pulsehealth/internal/auth"
	"github.com/pulsehealth/pulsehealth/internal/collect"
	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/internal/engine"
	"github.com/pulsehealth/pulsehealth/internal/history"
	"github.com/pulsehealth/pulsehealth/internal/notify"
	"github.com/pulsehealth/pulsehealth/internal/store"
	"github.com/pulsehealth/pulsehealth/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("pulsehealthd starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"machine_id", cfg.MachineID,
		"endpoint", cfg.Collector.Endpoint,
		"interval", cfg.Collector.Interval,
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hist := history.NewFile(cfg.Storage.HistoryPath)
	baselines := store.NewBaselineStore(cfg.Storage.BaselineDir)

	eng, err := engine.New(cfg, hist, baselines)
	if err != nil {
		slog.Error("failed to build analysis engine", "err", err)
		os.Exit(1)
	}

	// Report store with background TTL eviction.
	reports := store.NewReportStore(cfg.Server.ReportTTL)
	go reports.Run(ctx)

	collector := collect.New(cfg.Collector)
	notifier := notify.New(cfg.Notify)

	// Watch config file for hot-reload (logs only in this phase).
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			slog.Info("config hot-reloaded", "mappings", len(updated.Collector.Mappings))
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// WebSocket hub — broadcasts machine summaries to clients every 5 seconds.
	hub := ws.New(reports, 5*time.Second)
	go hub.Run(ctx)

	// Analysis loop: collect every interval, analyze against history and
	// baseline, publish the report.
	go func() {
		ticker := time.NewTicker(cfg.Collector.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scan, err := collector.Collect(ctx)
				if err != nil {
					slog.Warn("collect error", "endpoint", cfg.Collector.Endpoint, "err", err)
					continue
				}

				report, err := eng.Analyze(scan)
				if err != nil {
					slog.Error("analysis error", "machine", cfg.MachineID, "err", err)
					continue
				}

				if err := hist.Append(scan); err != nil {
					slog.Error("history append error", "err", err)
				}

				reports.Put(report)
				notifier.Publish(report)
				slog.Debug("report published",
					"machine", report.Machine,
					"state", report.State,
					"score", report.HealthScore,
					"anomalies", len(report.Anomalies),
					"regressions", len(report.Regressions),
				)
			}
		}
	}()

	// Combined HTTP server: REST API + WebSocket hub on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", auth.APIKeyMiddleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.Header,
		cfg.Server.Auth.Key(),
		api.New(reports, baselines),
	))
	httpMux.Handle("/ws/stream", hub)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("pulsehealthd shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
