package ports_test

import (
	"context"
	"testing"

	"go.trai.ch/patchwork/internal/adapters/telemetry"
	"go.trai.ch/patchwork/internal/core/ports"
)

func TestVertexFromContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := ports.VertexFromContext(ctx); ok {
		t.Fatal("expected no vertex on a bare context")
	}

	rctx, vertex := telemetry.NewNoop().Record(ctx, "work")
	got, ok := ports.VertexFromContext(rctx)
	if !ok {
		t.Fatal("expected a vertex on the recording context")
	}
	if got != vertex {
		t.Error("context carries a different vertex than Record returned")
	}

	// The parent context is untouched.
	if _, ok := ports.VertexFromContext(ctx); ok {
		t.Error("vertex leaked onto the parent context")
	}
}
