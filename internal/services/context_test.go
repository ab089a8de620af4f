package services_test

import (
	"context"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithObjectID(ctx, "TOI-700")
	ctx = services.WithSessionID(ctx, "session-123")
	ctx = services.WithOperation(ctx, "submit")

	if id, ok := services.ObjectIDFromContext(ctx); !ok || id != "TOI-700" {
		t.Fatalf("unexpected object id: %v %v", id, ok)
	}
	if sid, ok := services.SessionIDFromContext(ctx); !ok || sid != "session-123" {
		t.Fatalf("unexpected session id: %v %v", sid, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "submit" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithObjectID(ctx, "")
	ctx = services.WithOperation(ctx, "")
	if _, ok := services.ObjectIDFromContext(ctx); ok {
		t.Fatal("expected no object id value")
	}
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
}
