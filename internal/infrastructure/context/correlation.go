package context

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// RunIDKey is the context key for the per-run correlation ID.
const RunIDKey contextKey = "run_id"

// NewRunID generates the correlation ID for one fetch run. Every outbound
// request carries it so a run's trace lines can be grouped.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID attaches a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context, or "" if absent.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}
