package ports

import (
	"context"

	"go.trai.ch/patchwork/internal/core/domain"
)

// CatalogResolver resolves an input identifier against the package catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogResolver interface {
	// Resolve looks up a package name and version constraint in the
	// catalog. It should consult the on-disk cache before querying the
	// network. An unknown identifier yields domain.ErrUnknownPackage.
	Resolve(ctx context.Context, name, version string) (domain.ResolvedPackage, error)
}

// Realizer materializes a pinned package into the local store.
type Realizer interface {
	// Realize ensures the package pinned by src is present in the Nix
	// store and returns its output store path.
	Realize(ctx context.Context, src domain.NixSource) (string, error)
}
