package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

const spanAttrStatus = "status"

// TracingCollector starts one OpenTelemetry span per journal operation and
// propagates it through the returned context.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a collector on the given tracer; a nil tracer records nothing.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	return &TracingCollector{tracer: tracer}
}

func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attributesFrom(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan ends the span. SpanContext(s) not created by this collector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(attributesFrom(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

// OTelSpanContext wraps an OpenTelemetry span as eventstore.SpanContext.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps the status vocabulary of the journal onto span status codes:
//   - success, ok -> Ok
//   - conflict, error, canceled, timeout -> Error with a description
//
// Unknown statuses leave the code unset and are kept as a "status" attribute.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "success", "ok":
		s.span.SetStatus(codes.Ok, "")
	case "conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	case "canceled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	default:
		s.span.SetAttributes(attribute.String(spanAttrStatus, status))
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var (
	_ eventstore.TracingCollector = (*TracingCollector)(nil)
	_ eventstore.SpanContext      = (*OTelSpanContext)(nil)
)
