package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/patchwork/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/patchwork/internal/adapters/nix"                //nolint:depguard // Wired in app layer
	"go.trai.ch/patchwork/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/patchwork/internal/engine/patcher"
	"go.trai.ch/patchwork/internal/engine/planner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			planner.NodeID,
			patcher.NodeID,
			nix.RealizerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.RecipeLoader](ctx)
			if err != nil {
				return nil, err
			}
			plan, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}
			patch, err := graft.Dep[*patcher.Patcher](ctx)
			if err != nil {
				return nil, err
			}
			realizer, err := graft.Dep[ports.Realizer](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, plan, patch, realizer, telemetry, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
