// Package events defines the structured events Vigil emits and the sinks
// that consume them.
//
// Computation (sampling, evaluation, forecasting) never renders output
// directly; it hands events to a Sink. This keeps evaluation logic
// testable without capturing text output.
package events

import (
	"log/slog"
	"sync"
	"time"
)

// Kind labels an event category.
type Kind string

const (
	// KindThresholdBreach is a reactive alert: an observed metric
	// exceeded the threshold.
	KindThresholdBreach Kind = "threshold_breach"

	// KindPredictiveBreach is a predictive alert: a forecast value
	// exceeded the threshold.
	KindPredictiveBreach Kind = "predictive_breach"

	// KindSampleUnavailable reports a failed sampler call (fail-soft).
	KindSampleUnavailable Kind = "sample_unavailable"

	// KindForecastUnavailable reports a failed forecaster call (fail-soft).
	KindForecastUnavailable Kind = "forecast_unavailable"

	// KindRetrainComplete reports one model-refresh cycle finishing.
	KindRetrainComplete Kind = "retrain_complete"
)

// Event is one structured occurrence handed to a sink. Metric, Value and
// Threshold are set on breach events; ConfidencePct on predictive events;
// AccuracyPct on retrain events; SuggestedInstances on breaches where a
// scaling recommendation was computed.
type Event struct {
	Kind               Kind      `json:"kind"`
	Timestamp          time.Time `json:"timestamp"`
	Metric             string    `json:"metric,omitempty"`
	Value              float64   `json:"value,omitempty"`
	Threshold          float64   `json:"threshold,omitempty"`
	ConfidencePct      float64   `json:"confidencePct,omitempty"`
	AccuracyPct        float64   `json:"accuracyPct,omitempty"`
	SuggestedInstances int       `json:"suggestedInstances,omitempty"`
	Message            string    `json:"message,omitempty"`
}

// Sink receives events. Implementations must be safe for concurrent use:
// the health-check and retrain loops emit independently.
type Sink interface {
	Emit(e Event)
}

// LogSink renders events as structured log lines. Breaches log at Warn,
// unavailability at Warn, everything else at Info.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to the given logger. A nil logger
// uses slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (s *LogSink) Emit(e Event) {
	attrs := []any{"kind", string(e.Kind)}
	if e.Metric != "" {
		attrs = append(attrs, "metric", e.Metric, "value", e.Value, "threshold", e.Threshold)
	}
	if e.ConfidencePct > 0 {
		attrs = append(attrs, "confidence_pct", e.ConfidencePct)
	}
	if e.AccuracyPct > 0 {
		attrs = append(attrs, "accuracy_pct", e.AccuracyPct)
	}
	if e.SuggestedInstances > 0 {
		attrs = append(attrs, "suggested_instances", e.SuggestedInstances)
	}
	if e.Message != "" {
		attrs = append(attrs, "message", e.Message)
	}

	switch e.Kind {
	case KindThresholdBreach, KindPredictiveBreach, KindSampleUnavailable, KindForecastUnavailable:
		s.logger.Warn("monitor event", attrs...)
	default:
		s.logger.Info("monitor event", attrs...)
	}
}

// MemorySink retains every emitted event. Intended for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit implements Sink.
func (s *MemorySink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of everything emitted so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByKind returns emitted events of one kind, in emission order.
func (s *MemorySink) ByKind(kind Kind) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
