// Package forecast provides Vigil forecasters that project near-term
// resource utilization for predictive alerting.
//
// Each forecaster implements the Forecaster interface. Available
// forecasters include:
//   - SimulatedForecaster — memoryless pseudo-random projections
//   - WindowForecaster    — linear trend over a trailing sample window
//
// Forecasters never decide anything: they produce a Forecast and leave
// threshold evaluation to the caller.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/HatiCode/vigil/pkg/sampler"
)

// Forecast is one near-term projection of resource utilization.
// Percentages are in [0,100]; ConfidencePct is in [70,100].
type Forecast struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	CPUPct        float64   `json:"cpuPct"`
	MemoryPct     float64   `json:"memoryPct"`
	TrafficRPS    float64   `json:"trafficRps"`
	ConfidencePct float64   `json:"confidencePct"`
}

// Forecaster produces one projection per call.
//
// Predict is synchronous and should respect context cancellation and
// deadlines. Implementations that learn from observed samples receive
// them via Observe; memoryless implementations ignore it.
type Forecaster interface {
	// Predict returns a projection of utilization over the near term.
	// It must handle transient errors by returning them, never panicking.
	Predict(ctx context.Context) (Forecast, error)

	// Observe feeds one observed sample into the forecaster's history.
	Observe(s sampler.Sample)

	// Name returns a short, unique identifier for the forecaster.
	// Example: "simulated", "window".
	Name() string
}

// New creates a forecaster based on kind.
//
// Supported kinds:
//   - "simulated": memoryless pseudo-random projections
//   - "window": trailing-window linear trend over the given window
//
// Returns an error if kind is unknown.
func New(kind string, window time.Duration) (Forecaster, error) {
	switch kind {
	case "simulated":
		return NewSimulatedForecaster(), nil
	case "window":
		return NewWindowForecaster(window), nil
	default:
		return nil, fmt.Errorf("unknown forecaster kind: %s (must be simulated or window)", kind)
	}
}
