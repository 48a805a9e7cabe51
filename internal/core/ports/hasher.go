package ports

import "go.trai.ch/patchwork/internal/core/domain"

// Hasher computes content and plan fingerprints.
type Hasher interface {
	// FingerprintPlan computes a deterministic fingerprint over the
	// plan's label and request sequence. Equal recipes yield equal
	// fingerprints.
	FingerprintPlan(plan *domain.BuildPlan) string

	// ComputeFileHash hashes a single file's content.
	ComputeFileHash(path string) (uint64, error)

	// ComputeTreeHash hashes a directory tree, walking entries in a
	// deterministic order.
	ComputeTreeHash(root string) (uint64, error)
}
