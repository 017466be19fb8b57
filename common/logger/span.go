package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "lexdesk.app/deedwatch"

const traceparentKey = "traceparent"

// Span pairs an OTel span with the context that carries it.
//
//	span := logger.StartSpan(ctx, "reminder.process_deed")
//	defer span.End()
//	ctx = span.Context()
type Span struct {
	ctx  context.Context
	span trace.Span
}

func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) *Span {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
	return &Span{ctx: ctx, span: span}
}

// StartRemoteSpan continues the trace described by a W3C traceparent header value,
// as carried on queued mail. An empty or malformed value starts a new trace.
func StartRemoteSpan(ctx context.Context, traceparent string, name string, attrs ...attribute.KeyValue) *Span {
	if traceparent != "" {
		ctx = propagation.TraceContext{}.Extract(ctx, propagation.MapCarrier{traceparentKey: traceparent})
	}
	return StartSpan(ctx, name, attrs...)
}

// Traceparent renders the span in ctx as a W3C traceparent value, or "" when ctx
// carries no sampled span.
func Traceparent(ctx context.Context) string {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)
	return carrier.Get(traceparentKey)
}

func (s *Span) Context() context.Context {
	return s.ctx
}

func (s *Span) End() {
	s.span.End()
}

func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// Fail records err and marks the span as errored. A nil err is ignored.
func (s *Span) Fail(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}
