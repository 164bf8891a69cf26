// Package config provides configuration parsing and management for the monitor.
//
// It handles both command-line flags and environment variables, with flags
// taking precedence over environment variables. Two layers exist:
//
//   - Config: process configuration (listen address, logging, sampler and
//     forecaster selection, storage backend, TLS, capacity policy).
//   - MonitorConfig: the immutable evaluation profile resolved once at
//     startup from the execution mode and the AI flag. Exactly one
//     MonitorConfig governs a run; it is never mutated.
//
// Profile resolution rule: when AI mode is enabled the fixed AI profile
// applies and the execution mode is ignored entirely. Otherwise the base
// profile for the mode applies, and any unrecognized mode silently falls
// back to production. This permissive default is deliberate.
//
// Supported configuration sources (in order of precedence):
//  1. Command-line flags
//  2. Environment variables
//  3. Default values
//
// Example usage:
//
//	cfg := config.ParseFlags()
//	if err := cfg.Validate(); err != nil { ... }
//	// cfg.Monitor holds the resolved profile
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HatiCode/vigil/pkg/tls"
)

// Execution modes. Anything else resolves to the production profile.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Fixed interval of the model-refresh loop in AI mode.
const RetrainInterval = 2 * time.Minute

// MonitorConfig is the resolved evaluation profile. Immutable once
// resolved; there is no hot-reload.
type MonitorConfig struct {
	Interval          time.Duration
	AlertThresholdPct float64
	DebugMode         bool
	VerboseLogging    bool
	AIEnabled         bool
	CloudProviders    []string
	PredictiveWindow  time.Duration
}

// Config holds all monitor process configuration.
type Config struct {
	Listen    string
	LogFormat string
	LogLevel  string

	Name      string
	Mode      string
	AIEnabled bool

	Sampler       string
	SamplerConfig map[string]string
	Forecaster    string

	Storage       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	TLS           tls.Config

	MinInstances          int
	MaxInstances          int
	UpMaxFactorPerStep    float64
	DownMaxPercentPerStep int

	// IntervalOverride and ThresholdOverride replace the profile values
	// when non-zero. Zero means "use the profile".
	IntervalOverride  time.Duration
	ThresholdOverride float64

	// MetricsEndpoint and MLModelPath are passthrough values for external
	// collaborators; the monitor does not interpret them.
	MetricsEndpoint string
	MLModelPath     string

	// Monitor is the profile resolved from Mode and AIEnabled, with
	// overrides applied.
	Monitor MonitorConfig
}

// Resolve derives the evaluation profile from the execution mode and the
// AI flag. AI mode returns the fixed predictive/multi-cloud profile and
// ignores mode; unknown modes resolve to the production profile without
// error.
func Resolve(mode string, aiEnabled bool) MonitorConfig {
	if aiEnabled {
		return MonitorConfig{
			Interval:          30 * time.Second,
			AlertThresholdPct: 75,
			AIEnabled:         true,
			CloudProviders:    []string{"aws", "azure", "gcp"},
			PredictiveWindow:  5 * time.Minute,
		}
	}

	switch mode {
	case ModeDevelopment:
		return MonitorConfig{
			Interval:          5 * time.Second,
			AlertThresholdPct: 90,
			DebugMode:         true,
			VerboseLogging:    true,
		}
	default:
		return MonitorConfig{
			Interval:          60 * time.Second,
			AlertThresholdPct: 80,
		}
	}
}

// ParseFlags parses command-line flags and environment variables into a
// Config and resolves the evaluation profile. Environment variables are
// used as fallbacks when flags are not provided.
func ParseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Listen, "listen", getEnv("LISTEN", ":8086"), "HTTP listen address")

	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log format: text or json")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.StringVar(&cfg.Name, "name", getEnv("MONITOR_NAME", defaultName()), "Monitor instance name")
	flag.StringVar(&cfg.Mode, "mode", getEnv("MODE", ModeProduction), "Execution mode: production or development")
	flag.BoolVar(&cfg.AIEnabled, "ai", getEnvBool("AI_MODE", false), "Enable predictive/multi-cloud mode")

	flag.StringVar(&cfg.Sampler, "sampler", getEnv("SAMPLER", "simulated"), "Sampler kind: simulated, http, or prometheus")
	flag.StringVar(&cfg.Forecaster, "forecaster", getEnv("FORECASTER", "simulated"), "Forecaster kind: simulated or window")

	flag.StringVar(&cfg.Storage, "storage", getEnv("STORAGE", "memory"), "Storage backend: memory or redis")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", getEnv("REDIS_ADDR", "localhost:6379"), "Redis server address")
	flag.StringVar(&cfg.RedisPassword, "redis-password", getEnv("REDIS_PASSWORD", ""), "Redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", getEnvInt("REDIS_DB", 0), "Redis database number")
	flag.DurationVar(&cfg.RedisTTL, "redis-ttl", getEnvDuration("REDIS_TTL", 30*time.Minute), "Redis snapshot TTL")

	flag.BoolVar(&cfg.TLS.Enabled, "tls-enabled", getEnvBool("TLS_ENABLED", false), "Enable TLS for the HTTP API and sampler clients")
	flag.StringVar(&cfg.TLS.CertFile, "tls-cert-file", getEnv("TLS_CERT_FILE", ""), "TLS certificate file")
	flag.StringVar(&cfg.TLS.KeyFile, "tls-key-file", getEnv("TLS_KEY_FILE", ""), "TLS private key file")
	flag.StringVar(&cfg.TLS.CAFile, "tls-ca-file", getEnv("TLS_CA_FILE", ""), "TLS CA certificate file")

	flag.IntVar(&cfg.MinInstances, "min-instances", getEnvInt("MIN_INSTANCES", 1), "Minimum suggested instances")
	flag.IntVar(&cfg.MaxInstances, "max-instances", getEnvInt("MAX_INSTANCES", 100), "Maximum suggested instances")
	flag.Float64Var(&cfg.UpMaxFactorPerStep, "up-max-factor", getEnvFloat("UP_MAX_FACTOR", 2.0), "Max scale-up factor per suggestion")
	flag.IntVar(&cfg.DownMaxPercentPerStep, "down-max-percent", getEnvInt("DOWN_MAX_PERCENT", 50), "Max scale-down percent per suggestion")

	flag.DurationVar(&cfg.IntervalOverride, "interval", getEnvDuration("INTERVAL", 0), "Health-check interval (0 = use profile)")
	flag.Float64Var(&cfg.ThresholdOverride, "threshold", getEnvFloat("THRESHOLD", 0), "Alert threshold percent (0 = use profile)")

	flag.StringVar(&cfg.MetricsEndpoint, "metrics-endpoint", getEnv("METRICS_ENDPOINT", ""), "Passthrough metrics exporter endpoint")
	flag.StringVar(&cfg.MLModelPath, "ml-model-path", getEnv("ML_MODEL_PATH", ""), "Passthrough model file path")

	flag.Parse()

	cfg.SamplerConfig = parseSamplerConfig()

	cfg.Monitor = Resolve(cfg.Mode, cfg.AIEnabled)
	if cfg.IntervalOverride != 0 {
		cfg.Monitor.Interval = cfg.IntervalOverride
	}
	if cfg.ThresholdOverride != 0 {
		cfg.Monitor.AlertThresholdPct = cfg.ThresholdOverride
	}

	return cfg
}

// Validate checks the resolved configuration for fatal startup errors.
// Invalid numeric bounds stop the process before any loop starts.
func (c *Config) Validate() error {
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %v", c.Monitor.Interval)
	}

	if c.Monitor.AlertThresholdPct <= 0 || c.Monitor.AlertThresholdPct > 100 {
		return fmt.Errorf("alert threshold must be in (0,100], got %v", c.Monitor.AlertThresholdPct)
	}

	if c.Name == "" {
		return fmt.Errorf("monitor name cannot be empty")
	}

	if c.Storage != "memory" && c.Storage != "redis" {
		return fmt.Errorf("invalid storage %q (must be memory or redis)", c.Storage)
	}

	if c.MinInstances < 0 {
		return fmt.Errorf("minInstances cannot be negative")
	}

	if c.MaxInstances != 0 && c.MaxInstances < c.MinInstances {
		return fmt.Errorf("maxInstances (%d) < minInstances (%d)", c.MaxInstances, c.MinInstances)
	}

	if c.DownMaxPercentPerStep < 0 || c.DownMaxPercentPerStep > 100 {
		return fmt.Errorf("downMaxPercentPerStep must be 0-100")
	}

	return c.TLS.Validate()
}

func defaultName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "vigil"
}

// parseSamplerConfig parses SAMPLER_* environment variables into a generic
// configuration map. Sampler-specific configuration is provided via
// environment variables with the SAMPLER_ prefix, for example:
// SAMPLER_URL, SAMPLER_CPU_PATH, SAMPLER_CPU_QUERY.
// Environment variable names are converted to camelCase for the map keys
// (SAMPLER_CPU_PATH → cpuPath).
func parseSamplerConfig() map[string]string {
	config := make(map[string]string)

	for _, env := range os.Environ() {
		if len(env) > 8 && env[:8] == "SAMPLER_" {
			parts := splitEnv(env)
			if len(parts) == 2 {
				key := toLowerCamelCase(parts[0][8:])
				config[key] = parts[1]
			}
		}
	}

	return config
}

func splitEnv(env string) []string {
	for i := 0; i < len(env); i++ {
		if env[i] == '=' {
			return []string{env[:i], env[i+1:]}
		}
	}
	return []string{env}
}

func toLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	parts := []rune(s)
	result := make([]rune, 0, len(parts))
	nextUpper := false
	for i, r := range parts {
		if r == '_' {
			nextUpper = true
			continue
		}
		if i == 0 {
			result = append(result, toLower(r))
		} else if nextUpper {
			result = append(result, r)
			nextUpper = false
		} else {
			result = append(result, toLower(r))
		}
	}
	return string(result)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
