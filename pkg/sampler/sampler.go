// Package sampler provides Vigil resource samplers that obtain one
// point-in-time reading of resource utilization and normalize it into a
// common Sample structure.
//
// Each sampler implements the Sampler interface and can be plugged into
// the Vigil monitor loop. Available samplers include:
//   - SimulatedSampler  — draws readings from a pseudo-random source
//   - HTTPSampler       — generic sampler for any REST API with JSON responses
//   - PrometheusSampler — fetches readings via Prometheus instant queries
//
// Samplers are intentionally lightweight. They focus on pulling one
// reading, shaping it into a [Sample], and leaving all evaluation and
// forecasting logic to Vigil's upper layers.
package sampler

import (
	"context"
	"time"
)

// ProviderStatus describes the state of a single cloud provider's fleet
// at sampling time.
type ProviderStatus struct {
	Instances int     `json:"instances"`
	LoadPct   float64 `json:"loadPct"`
	Healthy   bool    `json:"healthy"`
}

// Sample is a single resource-utilization reading. Percentages are in
// [0,100]. Providers is nil unless the sampler was configured with a
// provider list.
type Sample struct {
	Timestamp time.Time                 `json:"timestamp"`
	CPUPct    float64                   `json:"cpuPct"`
	MemoryPct float64                   `json:"memoryPct"`
	DiskPct   float64                   `json:"diskPct"`
	Providers map[string]ProviderStatus `json:"providers,omitempty"`
}

// MaxUsage returns the highest of the three core utilization percentages
// and the name of the metric it came from.
func (s Sample) MaxUsage() (metric string, value float64) {
	metric, value = "cpu", s.CPUPct
	if s.MemoryPct > value {
		metric, value = "memory", s.MemoryPct
	}
	if s.DiskPct > value {
		metric, value = "disk", s.DiskPct
	}
	return metric, value
}

// Sampler is the interface that all Vigil samplers must implement.
//
// Samplers are responsible for fetching one reading from a telemetry
// source (OS counters, Prometheus, an HTTP API, a simulation) and
// shaping it into a Sample.
//
// Sample is synchronous and should respect context cancellation and
// deadlines. Calls are independent: a sampler must not require any
// ordering between calls and must be safe for concurrent use.
type Sampler interface {
	// Sample fetches one utilization reading. It must handle transient
	// errors by returning them (never panicking); the caller applies
	// fail-soft policy.
	Sample(ctx context.Context) (Sample, error)

	// Name returns a short, unique identifier for the sampler.
	// Example: "simulated", "prometheus", "http".
	Name() string
}
