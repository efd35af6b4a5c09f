package completion

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder defines the interface for recording provider call metrics.
// It abstracts the metrics backend so adapters can be tested with a mock
// recorder instead of Prometheus.
type MetricsRecorder interface {
	// RecordRequest records one provider call outcome ("success" or "failure").
	RecordRequest(provider, status string, duration time.Duration)

	// RecordOutputLength records the generated text length in runes.
	RecordOutputLength(provider string, length int)

	// RecordCircuitOpen counts calls rejected by an open circuit breaker.
	RecordCircuitOpen(provider string)
}

// PrometheusMetrics implements MetricsRecorder using Prometheus metrics.
type PrometheusMetrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	outputLength *prometheus.HistogramVec
	circuitOpen  *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// NewPrometheusMetrics returns the process-wide Prometheus recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			requests: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "completion_provider_requests_total",
				Help: "Total number of completion provider calls by provider and status",
			}, []string{"provider", "status"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "completion_provider_duration_seconds",
				Help:    "Time taken by a single completion provider call",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			outputLength: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "completion_output_length_characters",
				Help:    "Distribution of generated text lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 1000, 2000, 4000, 8000, 16000},
			}, []string{"provider"}),
			circuitOpen: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "completion_circuit_open_total",
				Help: "Total number of completion calls rejected by an open circuit breaker",
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordRequest implements MetricsRecorder.
func (p *PrometheusMetrics) RecordRequest(provider, status string, duration time.Duration) {
	p.requests.WithLabelValues(provider, status).Inc()
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordOutputLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordOutputLength(provider string, length int) {
	p.outputLength.WithLabelValues(provider).Observe(float64(length))
}

// RecordCircuitOpen implements MetricsRecorder.
func (p *PrometheusMetrics) RecordCircuitOpen(provider string) {
	p.circuitOpen.WithLabelValues(provider).Inc()
}
