package ports

import "go.trai.ch/patchwork/internal/core/domain"

// LockStore persists resolved package pins between invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Get retrieves the pin for a package name.
	// Returns nil, nil if the package is not pinned.
	Get(name string) (*domain.ResolvedPackage, error)

	// Put stores or replaces a pin.
	Put(pkg domain.ResolvedPackage) error

	// All returns the complete lockfile snapshot.
	All() (*domain.Lockfile, error)
}

// LockStoreOpener opens the lock store belonging to a workspace.
type LockStoreOpener interface {
	// Open returns the lock store rooted in the given workspace
	// directory. A missing lockfile yields an empty store.
	Open(root string) (LockStore, error)
}
