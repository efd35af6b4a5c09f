// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created from the global tracer returned by GetTracer. The tracer
// uses whatever provider is registered with otel.SetTracerProvider; with none
// registered spans are no-ops.
//
// Example usage:
//
//	import "ytldr/internal/observability/tracing"
//
//	func summarize(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "summarize")
//	    defer span.End()
//	    // ... run the pipeline ...
//	}
//
// HTTP handlers are wrapped with Middleware to start one server span per request.
package tracing
