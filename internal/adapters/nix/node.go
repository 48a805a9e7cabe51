package nix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the catalog resolver node.
	ResolverNodeID graft.ID = "adapter.nix.resolver"
	// RealizerNodeID is the unique identifier for the realizer node.
	RealizerNodeID graft.ID = "adapter.nix.realizer"
)

func init() {
	graft.Register(graft.Node[ports.CatalogResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogResolver, error) {
			return NewResolver()
		},
	})

	graft.Register(graft.Node[ports.Realizer]{
		ID:        RealizerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Realizer, error) {
			return NewManager(), nil
		},
	})
}
