package observability

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"awards-portal/internal/common/logger"
)

// SpanLogger writes every finished span to the log: failed spans at warn
// level, the rest at debug.
type SpanLogger struct {
	log logger.Logger
}

func NewSpanLogger(log logger.Logger) *SpanLogger {
	return &SpanLogger{log: log.WithFields(map[string]interface{}{"component": "tracing"})}
}

func (l *SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (l *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]interface{}{
		"span":       s.Name(),
		"traceId":    s.SpanContext().TraceID().String(),
		"spanId":     s.SpanContext().SpanID().String(),
		"durationMs": s.EndTime().Sub(s.StartTime()).Milliseconds(),
	}
	if parent := s.Parent(); parent.IsValid() {
		fields["parentSpanId"] = parent.SpanID().String()
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}

	if s.Status().Code == codes.Error {
		fields["status"] = s.Status().Description
		l.log.Warn("span failed", fields)
		return
	}
	l.log.Debug("span finished", fields)
}

func (l *SpanLogger) Shutdown(context.Context) error { return nil }

func (l *SpanLogger) ForceFlush(context.Context) error { return nil }
