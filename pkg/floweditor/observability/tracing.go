package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the floweditor tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("floweditor")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartPollSpan starts a span for one execution poll cycle.
	// Returns the context with span and the span itself.
	StartPollSpan(ctx context.Context, flowID string, attempt int) (context.Context, trace.Span)

	// StartSaveSpan starts a span for a flow save.
	StartSaveSpan(ctx context.Context, flowID string) (context.Context, trace.Span)

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

// StartPollSpan starts a span for one execution poll cycle.
func (m *otelSpanManager) StartPollSpan(ctx context.Context, flowID string, attempt int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "floweditor.poll",
		trace.WithAttributes(
			attribute.String("flow.id", flowID),
			attribute.Int("poll.attempt", attempt),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartSaveSpan starts a span for a flow save.
func (m *otelSpanManager) StartSaveSpan(ctx context.Context, flowID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "floweditor.save",
		trace.WithAttributes(
			attribute.String("flow.id", flowID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
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
