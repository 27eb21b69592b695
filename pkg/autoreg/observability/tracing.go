package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the autoreg tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("autoreg")

// SpanManager handles trace span lifecycle for batch initialization.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBatchSpan starts a span for a whole batch initialization pass.
	// Scope names the priority slice, e.g. "0-10".
	StartBatchSpan(ctx context.Context, scope string, entries int) (context.Context, trace.Span)

	// StartEntrySpan starts a span for one entry's create or init phase.
	// The entry span should be a child of the batch span.
	StartEntrySpan(ctx context.Context, key, phase string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartBatchSpan starts a span for a whole batch initialization pass.
func (m *otelSpanManager) StartBatchSpan(ctx context.Context, scope string, entries int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "autoreg.batch",
		trace.WithAttributes(
			attribute.String("batch.priorities", scope),
			attribute.Int("batch.entries", entries),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartEntrySpan starts a span for one entry's create or init phase.
func (m *otelSpanManager) StartEntrySpan(ctx context.Context, key, phase string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "autoreg."+phase,
		trace.WithAttributes(
			attribute.String("entry.key", key),
			attribute.String("entry.phase", phase),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
