package registry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/schema-registry/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured.
//
// Notes:
//   - resource: the schema ID being operated on
//   - subResource: additional context like a revision number
func (s *SchemaRegistry) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "registry",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

// startSpan opens a span for a registry operation when a tracer is attached.
// The returned span is nil when tracing is disabled.
func (s *SchemaRegistry) startSpan(ctx context.Context, name, schemaID string) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, nil
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("schema.id", schemaID),
	))
}

// endSpan closes the span, recording the error outcome if any.
func endSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *SchemaRegistry) logDebug(ctx context.Context, msg string, meta map[string]interface{}) {
	if s.log != nil {
		s.log.DebugWithContext(ctx, msg, nil, meta)
	}
}

func (s *SchemaRegistry) logInfo(ctx context.Context, msg string, meta map[string]interface{}) {
	if s.log != nil {
		s.log.InfoWithContext(ctx, msg, nil, meta)
	}
}

func (s *SchemaRegistry) logWarn(ctx context.Context, msg string, err error, meta map[string]interface{}) {
	if s.log != nil {
		s.log.WarnWithContext(ctx, msg, err, meta)
	}
}
