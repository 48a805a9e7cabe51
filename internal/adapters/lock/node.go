package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/patchwork/internal/core/ports"
)

// NodeID is the unique identifier for the lock store opener node.
const NodeID graft.ID = "adapter.lock.opener"

func init() {
	graft.Register(graft.Node[ports.LockStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStoreOpener, error) {
			return NewOpener(), nil
		},
	})
}
