// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Summarization metrics (mode, content type, chunk counts)
//   - Completion call metrics per pipeline stage
//   - Extraction metrics
//   - Circuit breaker state
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "ytldr/internal/observability/metrics"
//
//	func summarize(ct string) {
//	    start := time.Now()
//	    // ... run the pipeline ...
//	    metrics.RecordChunksProcessed(3)
//	    metrics.RecordSummarization("standard", ct, true, time.Since(start))
//	}
package metrics
