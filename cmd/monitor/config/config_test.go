package config

import (
	"testing"
	"time"
)

func TestResolve_Profiles(t *testing.T) {
	tests := []struct {
		name          string
		mode          string
		ai            bool
		wantInterval  time.Duration
		wantThreshold float64
		wantDebug     bool
	}{
		{
			name:          "production",
			mode:          ModeProduction,
			wantInterval:  60 * time.Second,
			wantThreshold: 80,
		},
		{
			name:          "development",
			mode:          ModeDevelopment,
			wantInterval:  5 * time.Second,
			wantThreshold: 90,
			wantDebug:     true,
		},
		{
			name:          "unknown mode falls back to production",
			mode:          "staging",
			wantInterval:  60 * time.Second,
			wantThreshold: 80,
		},
		{
			name:          "empty mode falls back to production",
			mode:          "",
			wantInterval:  60 * time.Second,
			wantThreshold: 80,
		},
		{
			name:          "ai profile ignores production mode",
			mode:          ModeProduction,
			ai:            true,
			wantInterval:  30 * time.Second,
			wantThreshold: 75,
		},
		{
			name:          "ai profile ignores development mode",
			mode:          ModeDevelopment,
			ai:            true,
			wantInterval:  30 * time.Second,
			wantThreshold: 75,
		},
		{
			name:          "ai profile ignores unknown mode",
			mode:          "whatever",
			ai:            true,
			wantInterval:  30 * time.Second,
			wantThreshold: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.mode, tt.ai)

			if got.Interval != tt.wantInterval {
				t.Errorf("Interval = %v, want %v", got.Interval, tt.wantInterval)
			}
			if got.AlertThresholdPct != tt.wantThreshold {
				t.Errorf("AlertThresholdPct = %v, want %v", got.AlertThresholdPct, tt.wantThreshold)
			}
			if got.DebugMode != tt.wantDebug {
				t.Errorf("DebugMode = %v, want %v", got.DebugMode, tt.wantDebug)
			}
			if got.AIEnabled != tt.ai {
				t.Errorf("AIEnabled = %v, want %v", got.AIEnabled, tt.ai)
			}
		})
	}
}

func TestResolve_AIProfile(t *testing.T) {
	got := Resolve(ModeProduction, true)

	wantProviders := []string{"aws", "azure", "gcp"}
	if len(got.CloudProviders) != len(wantProviders) {
		t.Fatalf("CloudProviders = %v, want %v", got.CloudProviders, wantProviders)
	}
	for i, p := range wantProviders {
		if got.CloudProviders[i] != p {
			t.Errorf("CloudProviders[%d] = %q, want %q", i, got.CloudProviders[i], p)
		}
	}

	if got.PredictiveWindow != 5*time.Minute {
		t.Errorf("PredictiveWindow = %v, want %v", got.PredictiveWindow, 5*time.Minute)
	}
}

func TestResolve_BaseProfileHasNoProviders(t *testing.T) {
	for _, mode := range []string{ModeProduction, ModeDevelopment, "bogus"} {
		got := Resolve(mode, false)
		if len(got.CloudProviders) != 0 {
			t.Errorf("mode %q: CloudProviders = %v, want empty", mode, got.CloudProviders)
		}
		if got.AIEnabled {
			t.Errorf("mode %q: AIEnabled = true, want false", mode)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Name:         "test",
			Storage:      "memory",
			MinInstances: 1,
			MaxInstances: 10,
			Monitor:      Resolve(ModeProduction, false),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero interval", func(c *Config) { c.Monitor.Interval = 0 }, true},
		{"negative interval", func(c *Config) { c.Monitor.Interval = -time.Second }, true},
		{"zero threshold", func(c *Config) { c.Monitor.AlertThresholdPct = 0 }, true},
		{"threshold above 100", func(c *Config) { c.Monitor.AlertThresholdPct = 100.5 }, true},
		{"threshold exactly 100", func(c *Config) { c.Monitor.AlertThresholdPct = 100 }, false},
		{"empty name", func(c *Config) { c.Name = "" }, true},
		{"invalid storage", func(c *Config) { c.Storage = "postgres" }, true},
		{"redis storage", func(c *Config) { c.Storage = "redis" }, false},
		{"negative min instances", func(c *Config) { c.MinInstances = -1 }, true},
		{"max below min", func(c *Config) { c.MinInstances = 5; c.MaxInstances = 2 }, true},
		{"unbounded max", func(c *Config) { c.MaxInstances = 0 }, false},
		{"down percent above 100", func(c *Config) { c.DownMaxPercentPerStep = 101 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToLowerCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"URL", "url"},
		{"CPU_PATH", "cpuPath"},
		{"MEMORY_PATH", "memoryPath"},
		{"CPU_QUERY", "cpuQuery"},
		{"BEARER_TOKEN", "bearerToken"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := toLowerCamelCase(tt.in); got != tt.want {
			t.Errorf("toLowerCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSamplerConfig(t *testing.T) {
	t.Setenv("SAMPLER_URL", "http://telemetry:9100/host")
	t.Setenv("SAMPLER_CPU_PATH", "host.cpu.used_percent")

	got := parseSamplerConfig()

	if got["url"] != "http://telemetry:9100/host" {
		t.Errorf("url = %q, want %q", got["url"], "http://telemetry:9100/host")
	}
	if got["cpuPath"] != "host.cpu.used_percent" {
		t.Errorf("cpuPath = %q, want %q", got["cpuPath"], "host.cpu.used_percent")
	}
}
