package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// SessionKey is the context key for execution session identifiers.
	SessionKey contextKey = "session_id"

	// ScriptKey is the context key for the script being run.
	ScriptKey contextKey = "script"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey is the context key for span IDs.
	SpanIDKey contextKey = "span_id"
)

// WithSession adds a session identifier to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession retrieves the session identifier from the context.
func GetSession(ctx context.Context) string {
	if session, ok := ctx.Value(SessionKey).(string); ok {
		return session
	}
	return ""
}

// WithScript adds the script path to the context.
func WithScript(ctx context.Context, script string) context.Context {
	return context.WithValue(ctx, ScriptKey, script)
}

// GetScript retrieves the script path from the context.
func GetScript(ctx context.Context) string {
	if script, ok := ctx.Value(ScriptKey).(string); ok {
		return script
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// WithSpanID adds a span ID to the context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// GetSpanID retrieves the span ID from the context.
func GetSpanID(ctx context.Context) string {
	if spanID, ok := ctx.Value(SpanIDKey).(string); ok {
		return spanID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if session := GetSession(ctx); session != "" {
		fields = append(fields, string(SessionKey), session)
	}
	if script := GetScript(ctx); script != "" {
		fields = append(fields, string(ScriptKey), script)
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, string(TraceIDKey), traceID)
	}
	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, string(SpanIDKey), spanID)
	}

	return fields
}
