package forecast

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/HatiCode/vigil/pkg/sampler"
)

const defaultLookahead = time.Minute

// WindowForecaster projects utilization by fitting a linear trend to the
// samples observed inside a trailing window and extrapolating it a short
// distance ahead. Confidence grows with the number of observations backing
// the fit and is clamped to [70,100].
//
// It needs at least two observations; before that Predict returns an
// error and the caller skips predictive alerting for the tick.
type WindowForecaster struct {
	mu      sync.Mutex
	window  time.Duration
	history []observation

	// Lookahead is how far beyond the newest observation the trend is
	// extrapolated. Zero means one minute.
	Lookahead time.Duration
}

type observation struct {
	at     time.Time
	cpu    float64
	memory float64
}

// NewWindowForecaster creates a trend forecaster over the given trailing
// window. A non-positive window defaults to five minutes.
func NewWindowForecaster(window time.Duration) *WindowForecaster {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &WindowForecaster{window: window}
}

func (f *WindowForecaster) Name() string { return "window" }

// Observe records one sample and evicts observations older than the window.
func (f *WindowForecaster) Observe(s sampler.Sample) {
	f.mu.Lock()
	defer f.mu.Unlock()

	at := s.Timestamp
	if at.IsZero() {
		at = time.Now().UTC()
	}

	f.history = append(f.history, observation{at: at, cpu: s.CPUPct, memory: s.MemoryPct})

	cutoff := at.Add(-f.window)
	trimmed := f.history[:0]
	for _, obs := range f.history {
		if !obs.at.Before(cutoff) {
			trimmed = append(trimmed, obs)
		}
	}
	f.history = trimmed
}

// Predict implements Forecaster. It extrapolates the window's linear trend
// for cpu and memory; traffic is not observed and reports zero.
func (f *WindowForecaster) Predict(ctx context.Context) (Forecast, error) {
	if err := ctx.Err(); err != nil {
		return Forecast{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.history) < 2 {
		return Forecast{}, errors.New("window forecaster: not enough observations")
	}

	lookahead := f.Lookahead
	if lookahead <= 0 {
		lookahead = defaultLookahead
	}

	last := f.history[len(f.history)-1]
	ahead := lookahead.Seconds()

	cpu := clampPct(last.cpu + f.slope(func(o observation) float64 { return o.cpu })*ahead)
	memory := clampPct(last.memory + f.slope(func(o observation) float64 { return o.memory })*ahead)

	// Confidence scales with how much evidence backs the fit: two points
	// is the floor, a full window of observations approaches the ceiling.
	confidence := 70 + 2*float64(len(f.history)-2)
	if confidence > 100 {
		confidence = 100
	}

	return Forecast{
		GeneratedAt:   time.Now().UTC(),
		CPUPct:        cpu,
		MemoryPct:     memory,
		TrafficRPS:    0,
		ConfidencePct: confidence,
	}, nil
}

// slope computes the least-squares slope, in units per second, of one
// metric across the retained observations.
func (f *WindowForecaster) slope(value func(observation) float64) float64 {
	n := float64(len(f.history))
	t0 := f.history[0].at

	var sumX, sumY, sumXY, sumX2 float64
	for _, obs := range f.history {
		x := obs.at.Sub(t0).Seconds()
		y := value(obs)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
