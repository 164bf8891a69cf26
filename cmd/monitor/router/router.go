// Package router configures HTTP routes for the monitor's HTTP API.
//
// The monitor exposes an HTTP server on port 8086 (configurable) that
// provides the latest health snapshot, liveness/readiness checks, and
// Prometheus metrics. This package sets up the routes for that server.
//
// Routes configured:
//   - GET /health/current - Retrieve the latest health snapshot
//   - GET /healthz - Liveness check (returns 200 OK)
//   - GET /readyz - Readiness check (503 until the first snapshot exists)
//   - GET /metrics - Prometheus metrics endpoint
//
// Snapshots older than the stale threshold include an X-Vigil-Stale
// header so consumers can distinguish a live reading from a leftover.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HatiCode/vigil/pkg/httpx"
	"github.com/HatiCode/vigil/pkg/storage"
)

// SetupRoutes configures HTTP endpoints for the monitor. source is the
// monitor instance whose snapshot /health/current serves by default; a
// ?source= query parameter overrides it.
func SetupRoutes(store storage.Store, source string, staleAfter time.Duration, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/healthz", httpx.HealthHandler())

	mux.Handle("/readyz", httpx.HealthHandlerWithCheck(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, found, err := store.GetLatest(ctx, source)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no snapshot yet for %q", source)
		}
		return nil
	}))

	mux.HandleFunc("/health/current", handleGetSnapshot(store, source, staleAfter, logger))

	mux.Handle("/metrics", promhttp.Handler())

	recover := httpx.RecoveryMiddleware(logger)
	logging := httpx.LoggingMiddleware(logger)
	return recover(logging(mux))
}

// handleGetSnapshot returns a handler for GET /health/current.
func handleGetSnapshot(store storage.Store, defaultSource string, staleAfter time.Duration, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")
		if source == "" {
			source = defaultSource
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		snapshot, found, err := store.GetLatest(ctx, source)
		if err != nil {
			logger.Error("failed to get snapshot", "source", source, "error", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if !found {
			httpx.WriteErrorMessage(w, http.StatusNotFound, fmt.Sprintf("snapshot not found for source %q", source))
			return
		}

		if time.Since(snapshot.GeneratedAt) > staleAfter {
			w.Header().Set("X-Vigil-Stale", "true")
		}

		if err := httpx.WriteJSON(w, http.StatusOK, snapshot); err != nil {
			logger.Error("failed to write JSON response", "error", err)
		}
	}
}
