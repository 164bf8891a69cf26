// Command monitor implements the Vigil resource health monitor.
//
// The monitor runs a continuous health-check loop that:
//  1. Samples resource utilization (cpu, memory, disk, optional cloud fleets)
//  2. Evaluates the reading against the configured alert threshold
//  3. In AI mode, forecasts near-term utilization and re-checks the threshold
//  4. Emits structured alert events and stores the latest snapshot
//
// In AI mode a second, independent loop refreshes the anomaly-detection
// model every two minutes.
//
// The monitor serves an HTTP API on port 8086 (configurable) providing:
//   - GET /health/current - Retrieve the latest health snapshot
//   - GET /healthz - Liveness check
//   - GET /readyz - Readiness check
//   - GET /metrics - Prometheus metrics endpoint
//
// Usage:
//
//	monitor -mode=production -ai=false -sampler=simulated
//
// Environment variables:
//
//	MODE          - Execution mode: production or development (default: production)
//	AI_MODE       - Enable predictive/multi-cloud mode (default: false)
//	MONITOR_NAME  - Monitor instance name (default: hostname)
//	SAMPLER       - Sampler kind: simulated, http, or prometheus (default: simulated)
//	SAMPLER_*     - Sampler-specific config (SAMPLER_URL, SAMPLER_CPU_PATH, ...)
//	FORECASTER    - Forecaster kind: simulated or window (default: simulated)
//	STORAGE       - Snapshot store: memory or redis (default: memory)
//	INTERVAL      - Health-check interval override (default: profile value)
//	THRESHOLD     - Alert threshold override (default: profile value)
//	LISTEN        - HTTP listen address (default: :8086)
//	LOG_LEVEL     - Logging level: debug, info, warn, error (default: info)
//	LOG_FORMAT    - Logging format: text, json (default: text)
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HatiCode/vigil/cmd/monitor/config"
	"github.com/HatiCode/vigil/cmd/monitor/logger"
	"github.com/HatiCode/vigil/cmd/monitor/metrics"
	"github.com/HatiCode/vigil/cmd/monitor/router"
	"github.com/HatiCode/vigil/pkg/capacity"
	"github.com/HatiCode/vigil/pkg/events"
	"github.com/HatiCode/vigil/pkg/forecast"
	"github.com/HatiCode/vigil/pkg/httpx"
	"github.com/HatiCode/vigil/pkg/sampler"
	"github.com/HatiCode/vigil/pkg/schedule"
	"github.com/HatiCode/vigil/pkg/storage"
	vigiltls "github.com/HatiCode/vigil/pkg/tls"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg := config.ParseFlags()

	log := logger.New(cfg)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("starting vigil monitor",
		"version", version,
		"name", cfg.Name,
		"mode", cfg.Mode,
		"ai_enabled", cfg.Monitor.AIEnabled,
		"interval", cfg.Monitor.Interval,
		"threshold_pct", cfg.Monitor.AlertThresholdPct,
	)

	var client *http.Client
	if cfg.TLS.Enabled {
		var err error
		client, err = httpx.NewClient(cfg.TLS, 10*time.Second)
		if err != nil {
			log.Error("failed to create TLS client", "error", err)
			os.Exit(1)
		}
	}

	smp, err := sampler.New(cfg.Sampler, cfg.SamplerConfig, cfg.Monitor.CloudProviders, client)
	if err != nil {
		log.Error("failed to create sampler", "error", err)
		os.Exit(1)
	}

	var fc forecast.Forecaster
	var rt forecast.Retrainer
	if cfg.Monitor.AIEnabled {
		fc, err = forecast.New(cfg.Forecaster, cfg.Monitor.PredictiveWindow)
		if err != nil {
			log.Error("failed to create forecaster", "error", err)
			os.Exit(1)
		}
		rt = forecast.StubRetrainer{}
	}

	store := newStore(cfg, log)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("failed to close store", "error", err)
			}
		}()
	}

	policy := capacity.Policy{
		MinInstances:          cfg.MinInstances,
		MaxInstances:          cfg.MaxInstances,
		UpMaxFactorPerStep:    cfg.UpMaxFactorPerStep,
		DownMaxPercentPerStep: cfg.DownMaxPercentPerStep,
	}

	mon := NewMonitor(
		cfg.Name,
		cfg.Monitor,
		smp,
		fc,
		rt,
		store,
		events.NewLogSink(log),
		policy,
		schedule.RealClock{},
		log,
		metrics.New(cfg.Name),
	)

	staleAfter := 2 * cfg.Monitor.Interval // Snapshot is stale if older than 2x the interval
	handler := router.SetupRoutes(store, cfg.Name, staleAfter, log)
	httpServer := httpx.NewServer(cfg.Listen, handler, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		if cfg.TLS.Enabled {
			tlsConfig, err := vigiltls.NewServerTLSConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.CAFile)
			if err != nil {
				serverErr <- err
				return
			}
			httpServer.SetTLSConfig(tlsConfig)
			serverErr <- httpServer.StartTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			return
		}
		serverErr <- httpServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig)
	case err := <-serverErr:
		if err != nil {
			log.Error("server failed", "error", err)
		}
	}

	log.Info("shutting down")
	cancel()
	mon.Stop()

	if err := httpServer.Stop(10 * time.Second); err != nil {
		log.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("shutdown complete")
}

// newStore selects the snapshot store backend.
func newStore(cfg *config.Config, log *slog.Logger) storage.Store {
	switch cfg.Storage {
	case "redis":
		store, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
		if err != nil {
			log.Error("failed to create redis store", "error", err)
			os.Exit(1)
		}
		log.Info("using redis snapshot store", "addr", cfg.RedisAddr)
		return store
	default:
		return storage.NewMemoryStore()
	}
}
