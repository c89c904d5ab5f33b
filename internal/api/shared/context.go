// Package shared contains request context helpers and JSON request/response
// utilities used by the HTTP handlers and middleware.
package shared

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys owned by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader lets a client supply its own trace ID
	TraceIDHeader = "X-Trace-ID"
)

// Client-supplied trace IDs are accepted only in this shape, so they can be
// logged and echoed without escaping.
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{8,64}$`)

// SetTraceID adds a newly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, NewTraceID())
}

// WithTraceID adds the given trace ID to the context. An empty or malformed
// ID is replaced by a generated one.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if !traceIDPattern.MatchString(traceID) {
		return SetTraceID(ctx)
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// NewTraceID returns a random 32 character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
