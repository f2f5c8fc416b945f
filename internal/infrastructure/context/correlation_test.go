package context

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("expected run-123, got %q", got)
	}
}

func TestGetRunID_Missing(t *testing.T) {
	if got := GetRunID(context.Background()); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}
}

func TestNewRunID(t *testing.T) {
	first := NewRunID()
	second := NewRunID()

	if first == "" {
		t.Fatal("expected non-empty run ID")
	}
	if first == second {
		t.Errorf("expected distinct run IDs, got %q twice", first)
	}
}
