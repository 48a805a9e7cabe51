package lock

import (
	"path/filepath"

	"go.trai.ch/patchwork/internal/core/ports"
)

// Opener implements ports.LockStoreOpener. The lockfile always lives
// next to the root recipe, so stores are opened per workspace.
type Opener struct{}

// NewOpener creates a new lock store opener.
func NewOpener() *Opener {
	return &Opener{}
}

var _ ports.LockStoreOpener = (*Opener)(nil)

// Open returns the lock store for the workspace rooted at root.
func (o *Opener) Open(root string) (ports.LockStore, error) {
	return NewStore(filepath.Join(root, DefaultFilename))
}
