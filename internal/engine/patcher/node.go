package patcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/adapters/config"
	"go.trai.ch/patchwork/internal/adapters/fs"
	"go.trai.ch/patchwork/internal/adapters/logger"
	"go.trai.ch/patchwork/internal/adapters/telemetry/progrock"
	"go.trai.ch/patchwork/internal/core/ports"
)

// NodeID is the unique identifier for the patcher node.
const NodeID graft.ID = "engine.patcher"

func init() {
	graft.Register(graft.Node[*Patcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			config.WriterNodeID,
			fs.VendorerNodeID,
			fs.HasherNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Patcher, error) {
			loader, err := graft.Dep[ports.RecipeLoader](ctx)
			if err != nil {
				return nil, err
			}
			writer, err := graft.Dep[ports.RecipeWriter](ctx)
			if err != nil {
				return nil, err
			}
			vendorer, err := graft.Dep[ports.Vendorer](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, writer, vendorer, hasher, log, telemetry), nil
		},
	})
}
