package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies spans started by this module.
const instrumentationName = "ytldr"

// GetTracer returns the tracer from the currently registered provider.
// It is looked up on each call so a provider registered after package
// init, as tests do, takes effect.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
