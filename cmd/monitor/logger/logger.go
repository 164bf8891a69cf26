// Package logger configures structured logging for the monitor.
package logger

import (
	"log/slog"
	"os"

	"github.com/HatiCode/vigil/cmd/monitor/config"
)

// New creates a slog.Logger from the configured level and format. The
// development profile's verbose flag forces debug level regardless of
// LOG_LEVEL.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	if cfg.Monitor.VerboseLogging {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
