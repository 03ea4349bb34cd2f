package telemetry

import sdktrace "go.opentelemetry.io/otel/sdk/trace"

// NewOTelTracerWithProcessors exposes newOTelTracer for testing.
func NewOTelTracerWithProcessors(name string, processors ...sdktrace.SpanProcessor) *OTelTracer {
	return newOTelTracer(name, processors...)
}
