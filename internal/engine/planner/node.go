package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/adapters/fs"
	"go.trai.ch/patchwork/internal/adapters/lock"
	"go.trai.ch/patchwork/internal/adapters/nix"
	"go.trai.ch/patchwork/internal/adapters/telemetry/progrock"
	"go.trai.ch/patchwork/internal/core/ports"
)

// NodeID is the unique identifier for the planner node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nix.ResolverNodeID,
			lock.NodeID,
			fs.HasherNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			resolver, err := graft.Dep[ports.CatalogResolver](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockStoreOpener](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(resolver, locks, hasher, telemetry), nil
		},
	})
}
