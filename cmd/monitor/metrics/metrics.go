// Package metrics provides Prometheus metrics instrumentation for the monitor.
//
// It exposes operational metrics about the monitor's pipeline performance,
// including the duration of each stage (sample, forecast), the latest
// utilization readings, alert activity, and error tracking. All metrics
// are exposed via the /metrics HTTP endpoint for Prometheus scraping.
//
// Metrics exposed:
//   - vigil_sampler_sample_seconds: Histogram of sampling duration
//   - vigil_forecaster_predict_seconds: Histogram of forecast duration
//   - vigil_usage_percent: Gauge of latest utilization per metric
//   - vigil_health_status: Gauge of latest status (0 optimal, 1 alert)
//   - vigil_predicted_cpu_percent: Gauge of latest predicted cpu
//   - vigil_forecast_confidence_percent: Gauge of latest forecast confidence
//   - vigil_suggested_instances: Gauge of latest scaling suggestion
//   - vigil_model_accuracy_percent: Gauge of last reported model accuracy
//   - vigil_alerts_total: Counter of alerts by kind and metric
//   - vigil_retrains_total: Counter of completed model refreshes
//   - vigil_errors_total: Counter of errors by component and reason
//
// All metrics include the monitor label identifying the instance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the monitor.
type Metrics struct {
	SamplerSampleSeconds      prometheus.Histogram
	ForecasterPredictSeconds  prometheus.Histogram
	UsagePercent              *prometheus.GaugeVec
	HealthStatus              prometheus.Gauge
	PredictedCPUPercent       prometheus.Gauge
	ForecastConfidencePercent prometheus.Gauge
	SuggestedInstances        prometheus.Gauge
	ModelAccuracyPercent      prometheus.Gauge
	AlertsTotal               *prometheus.CounterVec
	RetrainsTotal             prometheus.Counter
	ErrorsTotal               *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New(monitor string) *Metrics {
	constLabels := prometheus.Labels{"monitor": monitor}

	return &Metrics{
		SamplerSampleSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "vigil_sampler_sample_seconds",
			Help:        "Time spent obtaining one utilization reading",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),

		ForecasterPredictSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "vigil_forecaster_predict_seconds",
			Help:        "Time spent producing one forecast",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),

		UsagePercent: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "vigil_usage_percent",
			Help:        "Latest utilization reading per metric",
			ConstLabels: constLabels,
		}, []string{"metric"}),

		HealthStatus: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "vigil_health_status",
			Help:        "Latest evaluation result (0 optimal, 1 alert)",
			ConstLabels: constLabels,
		}),

		PredictedCPUPercent: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "vigil_predicted_cpu_percent",
			Help:        "Latest predicted cpu utilization",
			ConstLabels: constLabels,
		}),

		ForecastConfidencePercent: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "vigil_forecast_confidence_percent",
			Help:        "Confidence of the latest forecast",
			ConstLabels: constLabels,
		}),

		SuggestedInstances: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "vigil_suggested_instances",
			Help:        "Latest auto-scaling instance suggestion",
			ConstLabels: constLabels,
		}),

		ModelAccuracyPercent: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "vigil_model_accuracy_percent",
			Help:        "Accuracy reported by the last model refresh",
			ConstLabels: constLabels,
		}),

		AlertsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "vigil_alerts_total",
			Help:        "Total number of alerts by kind and metric",
			ConstLabels: constLabels,
		}, []string{"kind", "metric"}),

		RetrainsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "vigil_retrains_total",
			Help:        "Total number of completed model refreshes",
			ConstLabels: constLabels,
		}),

		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "vigil_errors_total",
			Help:        "Total number of errors by component and reason",
			ConstLabels: constLabels,
		}, []string{"component", "reason"}),
	}
}

// RecordSample records the time spent sampling.
func (m *Metrics) RecordSample(seconds float64) {
	m.SamplerSampleSeconds.Observe(seconds)
}

// RecordPredict records the time spent forecasting.
func (m *Metrics) RecordPredict(seconds float64) {
	m.ForecasterPredictSeconds.Observe(seconds)
}

// SetUsage sets the latest utilization readings.
func (m *Metrics) SetUsage(cpu, memory, disk float64) {
	m.UsagePercent.WithLabelValues("cpu").Set(cpu)
	m.UsagePercent.WithLabelValues("memory").Set(memory)
	m.UsagePercent.WithLabelValues("disk").Set(disk)
}

// SetStatus sets the latest evaluation result.
func (m *Metrics) SetStatus(alert bool) {
	if alert {
		m.HealthStatus.Set(1)
	} else {
		m.HealthStatus.Set(0)
	}
}

// SetPredicted sets the latest forecast readout.
func (m *Metrics) SetPredicted(cpu, confidence float64) {
	m.PredictedCPUPercent.Set(cpu)
	m.ForecastConfidencePercent.Set(confidence)
}

// SetSuggestedInstances sets the latest scaling suggestion.
func (m *Metrics) SetSuggestedInstances(n int) {
	m.SuggestedInstances.Set(float64(n))
}

// RecordAlert increments the alert counter.
func (m *Metrics) RecordAlert(kind, metric string) {
	m.AlertsTotal.WithLabelValues(kind, metric).Inc()
}

// RecordRetrain records one completed model refresh.
func (m *Metrics) RecordRetrain(accuracy float64) {
	m.RetrainsTotal.Inc()
	m.ModelAccuracyPercent.Set(accuracy)
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(component, reason string) {
	m.ErrorsTotal.WithLabelValues(component, reason).Inc()
}
