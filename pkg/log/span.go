package log

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Logger = &SpanLogger{}

// SpanLogger writes every record to the wrapped logger and to a span.
// Error and Fatal records mark the span as failed.
type SpanLogger struct {
	lg  Logger
	ser SpanEventRecorder
}

func NewSpanLogger(lg Logger, ser SpanEventRecorder) Logger {
	return &SpanLogger{lg: lg.AddCallerSkip(1), ser: ser}
}

func (sl *SpanLogger) Debug(msg string, kv ...any) {
	sl.ser.RecordEvent(msg, sl.spanKV(LevelDebug, kv)...)
	sl.lg.Debug(msg, sl.traceKV(kv)...)
}

func (sl *SpanLogger) Info(msg string, kv ...any) {
	sl.ser.RecordEvent(msg, sl.spanKV(LevelInfo, kv)...)
	sl.lg.Info(msg, sl.traceKV(kv)...)
}

func (sl *SpanLogger) Warn(msg string, kv ...any) {
	sl.ser.RecordEvent(msg, sl.spanKV(LevelWarn, kv)...)
	sl.lg.Warn(msg, sl.traceKV(kv)...)
}

func (sl *SpanLogger) Error(msg string, kv ...any) {
	sl.ser.RecordError(msg, sl.spanKV(LevelError, kv)...)
	sl.lg.Error(msg, sl.traceKV(kv)...)
}

func (sl *SpanLogger) Fatal(msg string, kv ...any) {
	sl.ser.RecordError(msg, sl.spanKV(LevelFatal, kv)...)
	sl.lg.Fatal(msg, sl.traceKV(kv)...)
}

func (sl *SpanLogger) WithKV(key string, value any) Logger {
	return &SpanLogger{lg: sl.lg.WithKV(key, value), ser: sl.ser}
}

func (sl *SpanLogger) GetAllKV() []any { return sl.lg.GetAllKV() }

func (sl *SpanLogger) WithName(name string) Logger {
	return &SpanLogger{lg: sl.lg.WithName(name), ser: sl.ser}
}

func (sl *SpanLogger) Name() string { return sl.lg.Name() }

func (sl *SpanLogger) AddCallerSkip(skip int) Logger {
	return &SpanLogger{lg: sl.lg.AddCallerSkip(skip), ser: sl.ser}
}

func (sl *SpanLogger) traceKV(kv []any) []any {
	return append([]any{"traceId", sl.ser.TraceID(), "spanId", sl.ser.SpanID()}, kv...)
}

func (sl *SpanLogger) spanKV(level Level, kv []any) []any {
	out := append([]any{"level", string(level), "component", sl.lg.Name()}, sl.lg.GetAllKV()...)
	return append(out, kv...)
}

var _ SpanEventRecorder = &OtelSpanEventRecorder{}

// OtelSpanEventRecorder turns log records into span events.
type OtelSpanEventRecorder struct {
	span trace.Span
}

func NewOtelSpanEventRecorder(span trace.Span) *OtelSpanEventRecorder {
	return &OtelSpanEventRecorder{span: span}
}

func (r *OtelSpanEventRecorder) TraceID() string { return r.span.SpanContext().TraceID().String() }
func (r *OtelSpanEventRecorder) SpanID() string  { return r.span.SpanContext().SpanID().String() }

func (r *OtelSpanEventRecorder) RecordEvent(name string, kv ...any) {
	r.span.AddEvent(name, trace.WithAttributes(toAttributes(kv)...))
}

func (r *OtelSpanEventRecorder) RecordError(name string, kv ...any) {
	r.span.AddEvent(name, trace.WithAttributes(toAttributes(kv)...))
	r.span.SetStatus(codes.Error, name)
}

func toAttributes(kv []any) []attribute.KeyValue {
	if len(kv)%2 != 0 {
		kv = append(kv, "MISSING")
	}

	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			attrs = append(attrs, attribute.String("invalidKeysAndValues", fmt.Sprint(kv[i:])))
			break
		}

		switch v := kv[i+1].(type) {
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case uint32:
			attrs = append(attrs, attribute.Int64(key, int64(v)))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case error:
			attrs = append(attrs, attribute.String(key, v.Error()))
		case fmt.Stringer:
			attrs = append(attrs, attribute.String(key, v.String()))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
		}
	}
	return attrs
}
