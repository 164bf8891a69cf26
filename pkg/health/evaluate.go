// Package health implements threshold evaluation of utilization readings.
//
// Evaluation is stateless and comparison-only so the same logic serves
// both observed samples and forecast values: a reading breaches when it
// is strictly greater than the configured threshold. Equality is not a
// breach.
package health

import (
	"github.com/HatiCode/vigil/pkg/sampler"
)

// Status classifies one evaluation.
type Status string

const (
	// StatusOptimal means every metric is at or below the threshold.
	StatusOptimal Status = "optimal"

	// StatusAlert means at least one metric exceeds the threshold.
	StatusAlert Status = "alert"
)

// Evaluation is the result of comparing a reading against a threshold.
type Evaluation struct {
	Status Status

	// Metric names the highest-usage metric ("cpu", "memory" or "disk").
	Metric string

	// Value is that metric's utilization percentage.
	Value float64

	// Threshold is the alert threshold the reading was compared against.
	Threshold float64
}

// Evaluate compares a sample against the alert threshold. The decision is
// driven by the maximum of the three core utilization percentages using a
// strict > comparison.
func Evaluate(s sampler.Sample, thresholdPct float64) Evaluation {
	metric, value := s.MaxUsage()

	status := StatusOptimal
	if Exceeds(value, thresholdPct) {
		status = StatusAlert
	}

	return Evaluation{
		Status:    status,
		Metric:    metric,
		Value:     value,
		Threshold: thresholdPct,
	}
}

// Exceeds reports whether value breaches the threshold. A value equal to
// the threshold does not.
func Exceeds(value, thresholdPct float64) bool {
	return value > thresholdPct
}
