// Package main implements the core monitor loop orchestration.
//
// This file contains the Monitor type which orchestrates the health-check
// pipeline:
//
//	sample → evaluate → (AI mode) predict → evaluate → emit/store
//
// The Monitor runs continuously via Start(), executing Tick() on the
// health-check cadence. In AI mode a second, independent loop refreshes
// the anomaly-detection model on a fixed cadence; the two loops never
// block one another. Each tick updates the stored snapshot that the HTTP
// API serves.
//
// Sampling and forecasting failures are fail-soft: the tick proceeds on
// the last-known reading (or skips predictive alerting) and emits an
// observability event rather than stopping the loop.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/HatiCode/vigil/cmd/monitor/config"
	"github.com/HatiCode/vigil/cmd/monitor/metrics"
	"github.com/HatiCode/vigil/pkg/capacity"
	"github.com/HatiCode/vigil/pkg/events"
	"github.com/HatiCode/vigil/pkg/forecast"
	"github.com/HatiCode/vigil/pkg/health"
	"github.com/HatiCode/vigil/pkg/sampler"
	"github.com/HatiCode/vigil/pkg/schedule"
	"github.com/HatiCode/vigil/pkg/storage"
)

// Monitor orchestrates the health-check and model-refresh loops.
type Monitor struct {
	name       string
	cfg        config.MonitorConfig
	sampler    sampler.Sampler
	forecaster forecast.Forecaster
	retrainer  forecast.Retrainer
	store      storage.Store
	sink       events.Sink
	policy     capacity.Policy
	clock      schedule.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics

	healthLoop  *schedule.Loop
	retrainLoop *schedule.Loop

	mu               sync.Mutex
	lastSample       sampler.Sample
	haveSample       bool
	currentInstances int
}

// NewMonitor creates a new Monitor. forecaster and retrainer may be nil
// when AI mode is disabled.
func NewMonitor(
	name string,
	cfg config.MonitorConfig,
	smp sampler.Sampler,
	fc forecast.Forecaster,
	rt forecast.Retrainer,
	store storage.Store,
	sink events.Sink,
	policy capacity.Policy,
	clock schedule.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = schedule.RealClock{}
	}

	return &Monitor{
		name:             name,
		cfg:              cfg,
		sampler:          smp,
		forecaster:       fc,
		retrainer:        rt,
		store:            store,
		sink:             sink,
		policy:           policy,
		clock:            clock,
		logger:           logger,
		metrics:          m,
		currentInstances: policy.MinInstances,
	}
}

// Start launches the health-check loop and, in AI mode, the model-refresh
// loop. Both perform an eager first tick and then fire on their own
// cadences until Stop or context cancellation.
func (m *Monitor) Start(ctx context.Context) {
	m.healthLoop = schedule.NewLoop("health-check", m.cfg.Interval, m.Tick, m.clock, m.logger)
	m.healthLoop.Start(ctx)

	if m.cfg.AIEnabled && m.retrainer != nil {
		m.retrainLoop = schedule.NewLoop("model-refresh", config.RetrainInterval, m.retrainTick, m.clock, m.logger)
		m.retrainLoop.Start(ctx)
	}
}

// Stop cancels both loops and waits for in-flight ticks to finish.
func (m *Monitor) Stop() {
	if m.healthLoop != nil {
		m.healthLoop.Stop()
	}
	if m.retrainLoop != nil {
		m.retrainLoop.Stop()
	}
}

// Tick performs one health-check cycle. Exported for testing purposes.
func (m *Monitor) Tick(ctx context.Context) error {
	start := time.Now()
	m.logger.Debug("starting health tick")

	// Every collaborator call inside the tick is bounded by the loop
	// interval so one slow source cannot pile up firings.
	tctx, cancel := context.WithTimeout(ctx, m.cfg.Interval)
	defer cancel()

	s, unavailable, ok := m.collect(tctx)
	if !ok {
		return nil
	}

	eval := health.Evaluate(s, m.cfg.AlertThresholdPct)

	if m.metrics != nil {
		m.metrics.RecordSample(time.Since(start).Seconds())
		m.metrics.SetUsage(s.CPUPct, s.MemoryPct, s.DiskPct)
		m.metrics.SetStatus(eval.Status == health.StatusAlert)
	}

	if eval.Status == health.StatusAlert {
		m.emitBreach(events.KindThresholdBreach, eval, 0)
	}

	var fc *forecast.Forecast
	if m.cfg.AIEnabled && m.forecaster != nil {
		fc = m.predict(tctx, s, unavailable)
	}

	m.storeSnapshot(s, eval, fc, unavailable)

	m.logger.Debug("health tick complete",
		"status", string(eval.Status),
		"max_metric", eval.Metric,
		"max_value", eval.Value,
		"unavailable", unavailable,
		"total_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// collect obtains one reading, applying fail-soft policy: on error the
// last-known sample is reused and flagged unavailable. ok is false only
// when no reading has ever succeeded, in which case the tick is skipped.
func (m *Monitor) collect(ctx context.Context) (s sampler.Sample, unavailable, ok bool) {
	s, err := m.sampler.Sample(ctx)
	if err != nil {
		if m.metrics != nil {
			m.metrics.RecordError("sampler", "sample_failed")
		}
		m.sink.Emit(events.Event{
			Kind:      events.KindSampleUnavailable,
			Timestamp: m.clock.Now(),
			Message:   err.Error(),
		})

		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.haveSample {
			m.logger.Warn("sample unavailable and no prior reading, skipping tick", "error", err)
			return sampler.Sample{}, false, false
		}
		m.logger.Warn("sample unavailable, reusing last reading", "error", err)
		return m.lastSample, true, true
	}

	m.mu.Lock()
	m.lastSample = s
	m.haveSample = true
	m.mu.Unlock()

	return s, false, true
}

// predict runs the forecaster and re-applies the threshold check to the
// predicted cpu. Failures skip predictive alerting for this tick.
func (m *Monitor) predict(ctx context.Context, s sampler.Sample, unavailable bool) *forecast.Forecast {
	if !unavailable {
		m.forecaster.Observe(s)
	}

	start := time.Now()
	fc, err := m.forecaster.Predict(ctx)
	if err != nil {
		if m.metrics != nil {
			m.metrics.RecordError("forecaster", "predict_failed")
		}
		m.sink.Emit(events.Event{
			Kind:      events.KindForecastUnavailable,
			Timestamp: m.clock.Now(),
			Message:   err.Error(),
		})
		m.logger.Warn("forecast unavailable, skipping predictive check", "error", err)
		return nil
	}

	if m.metrics != nil {
		m.metrics.RecordPredict(time.Since(start).Seconds())
		m.metrics.SetPredicted(fc.CPUPct, fc.ConfidencePct)
	}

	if health.Exceeds(fc.CPUPct, m.cfg.AlertThresholdPct) {
		m.emitBreach(events.KindPredictiveBreach, health.Evaluation{
			Status:    health.StatusAlert,
			Metric:    "cpu",
			Value:     fc.CPUPct,
			Threshold: m.cfg.AlertThresholdPct,
		}, fc.ConfidencePct)
	}

	return &fc
}

// emitBreach emits one alert carrying an auto-scaling suggestion.
func (m *Monitor) emitBreach(kind events.Kind, eval health.Evaluation, confidence float64) {
	m.mu.Lock()
	suggested := capacity.Suggest(m.currentInstances, eval.Value, eval.Threshold, m.policy)
	m.currentInstances = suggested
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordAlert(string(kind), eval.Metric)
		m.metrics.SetSuggestedInstances(suggested)
	}

	m.sink.Emit(events.Event{
		Kind:               kind,
		Timestamp:          m.clock.Now(),
		Metric:             eval.Metric,
		Value:              eval.Value,
		Threshold:          eval.Threshold,
		ConfidencePct:      confidence,
		SuggestedInstances: suggested,
	})
}

// storeSnapshot persists the latest evaluated state for the HTTP API.
func (m *Monitor) storeSnapshot(s sampler.Sample, eval health.Evaluation, fc *forecast.Forecast, unavailable bool) {
	snapshot := storage.Snapshot{
		Source:      m.name,
		GeneratedAt: m.clock.Now(),
		Status:      string(eval.Status),
		CPUPct:      s.CPUPct,
		MemoryPct:   s.MemoryPct,
		DiskPct:     s.DiskPct,
		Providers:   s.Providers,
		Forecast:    fc,
		Unavailable: unavailable,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := m.store.Put(ctx, snapshot); err != nil {
		if m.metrics != nil {
			m.metrics.RecordError("store", "put_failed")
		}
		m.logger.Error("failed to store snapshot", "error", err)
	}
}

// retrainTick performs one model-refresh cycle.
func (m *Monitor) retrainTick(ctx context.Context) error {
	res, err := m.retrainer.Retrain(ctx)
	if err != nil {
		if m.metrics != nil {
			m.metrics.RecordError("retrainer", "retrain_failed")
		}
		return err
	}

	if m.metrics != nil {
		m.metrics.RecordRetrain(res.AccuracyPct)
	}

	m.sink.Emit(events.Event{
		Kind:        events.KindRetrainComplete,
		Timestamp:   m.clock.Now(),
		AccuracyPct: res.AccuracyPct,
		Message:     fmt.Sprintf("model retrained, accuracy %.1f%%", res.AccuracyPct),
	})

	return nil
}
