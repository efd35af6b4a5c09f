// Package observability groups the logging, metrics, tracing and request ID
// packages used by the HTTP server and the summarization pipeline.
//
//   - logging: slog construction and context-scoped loggers
//   - metrics: Prometheus collectors and Record* helpers
//   - tracing: OpenTelemetry tracer access and HTTP middleware
//   - requestid: X-Request-ID propagation
package observability
