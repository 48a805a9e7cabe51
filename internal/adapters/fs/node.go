package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// VendorerNodeID is the unique identifier for the vendorer node.
	VendorerNodeID graft.ID = "adapter.fs.vendorer"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Vendorer]{
		ID:        VendorerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Vendorer, error) {
			return NewVendorer(), nil
		},
	})
}
