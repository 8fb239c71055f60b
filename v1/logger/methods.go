package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// fields converts the free-form metadata map plus an optional error into zap
// fields. A nil map and nil error produce no fields.
func fields(err error, meta map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(meta)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for k, v := range meta {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// traceFields extracts trace and span IDs from the context when tracing
// integration is enabled and a span is recording.
func (l *Logger) traceFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// Debug logs a message at debug level with optional error and metadata.
func (l *Logger) Debug(msg string, err error, meta map[string]interface{}) {
	l.Zap.Debug(msg, fields(err, meta)...)
}

// Info logs a message at info level with optional error and metadata.
func (l *Logger) Info(msg string, err error, meta map[string]interface{}) {
	l.Zap.Info(msg, fields(err, meta)...)
}

// Warn logs a message at warning level with optional error and metadata.
func (l *Logger) Warn(msg string, err error, meta map[string]interface{}) {
	l.Zap.Warn(msg, fields(err, meta)...)
}

// Error logs a message at error level with optional error and metadata.
func (l *Logger) Error(msg string, err error, meta map[string]interface{}) {
	l.Zap.Error(msg, fields(err, meta)...)
}

// DebugWithContext logs at debug level, including trace correlation fields
// extracted from the context when tracing is enabled.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, meta map[string]interface{}) {
	l.Zap.Debug(msg, append(l.traceFields(ctx), fields(err, meta)...)...)
}

// InfoWithContext logs at info level, including trace correlation fields
// extracted from the context when tracing is enabled.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, meta map[string]interface{}) {
	l.Zap.Info(msg, append(l.traceFields(ctx), fields(err, meta)...)...)
}

// WarnWithContext logs at warning level, including trace correlation fields
// extracted from the context when tracing is enabled.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, meta map[string]interface{}) {
	l.Zap.Warn(msg, append(l.traceFields(ctx), fields(err, meta)...)...)
}

// ErrorWithContext logs at error level, including trace correlation fields
// extracted from the context when tracing is enabled.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, meta map[string]interface{}) {
	l.Zap.Error(msg, append(l.traceFields(ctx), fields(err, meta)...)...)
}
