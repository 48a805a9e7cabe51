package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/adapters/logger"
	"go.trai.ch/patchwork/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the recipe loader node.
	LoaderNodeID graft.ID = "adapter.config.loader"
	// WriterNodeID is the unique identifier for the recipe writer node.
	WriterNodeID graft.ID = "adapter.config.writer"
)

func init() {
	graft.Register(graft.Node[ports.RecipeLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.RecipeLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.RecipeWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecipeWriter, error) {
			return NewWriter(), nil
		},
	})
}
