package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for runtime spans.
const TracerName = "github.com/vango-dev/laiweb"

// Tracer returns the tracer from the global provider. It is a no-op until
// the application installs a provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// ComponentAttrs returns the span attributes identifying a component.
func ComponentAttrs(name string, id uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("laiweb.component", name),
		attribute.Int64("laiweb.component.id", int64(id)),
	}
}

// Start opens a span named name.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = Tracer()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// End closes span, recording err when it is not nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
