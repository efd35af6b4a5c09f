// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Pipeline metrics track summarization requests end to end
var (
	// SummarizationsTotal counts summarizations by mode, content type and status
	SummarizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizations_total",
			Help: "Total number of summarization requests",
		},
		[]string{"mode", "content_type", "status"},
	)

	// SummarizationDuration measures end-to-end summarization time
	SummarizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to produce a summary",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"mode"},
	)

	// ChunksPerSummary measures how many chunks each summary needed
	ChunksPerSummary = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_chunks",
			Help:    "Number of chunks processed per summary",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// CompletionCallsTotal counts completion calls by pipeline stage and status
	CompletionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_calls_total",
			Help: "Total number of completion service calls",
		},
		[]string{"stage", "status"},
	)

	// CompletionCallDuration measures completion call latency by stage
	CompletionCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "completion_call_duration_seconds",
			Help:    "Completion service call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"stage"},
	)

	// ForensicMissingSectionsTotal counts forensic sections the model left out
	ForensicMissingSectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forensic_missing_sections_total",
			Help: "Total number of forensic report sections missing from responses",
		},
		[]string{"section"},
	)
)

// Extraction metrics track text extraction before chunking
var (
	// ExtractionAttemptsTotal counts extraction attempts by content type and result
	ExtractionAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_attempts_total",
			Help: "Total number of content extraction attempts",
		},
		[]string{"content_type", "result"}, // result: success, failure, passthrough
	)

	// ExtractionDuration measures time to extract text
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Time taken to extract content text",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ExtractedSize measures extracted text size in characters
	ExtractedSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "extracted_text_size_chars",
			Help: "Extracted content size in characters",
			Buckets: []float64{
				100, 400, 1600, 6400, 25600, 102400, 409600, 1638400,
			},
		},
	)
)

// CircuitBreakerState reports each breaker's state: 0 closed, 1 half-open, 2 open
var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	},
	[]string{"circuit"},
)

// RecordCircuitState sets the gauge for a breaker. state follows gobreaker's
// ordering (closed, half-open, open).
func RecordCircuitState(circuit string, state int) {
	CircuitBreakerState.WithLabelValues(circuit).Set(float64(state))
}

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
