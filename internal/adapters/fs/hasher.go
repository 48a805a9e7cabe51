// Package fs provides filesystem adapters: hashing and vendoring.
package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

// Hasher computes content and plan fingerprints with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

var _ ports.Hasher = (*Hasher)(nil)

// FingerprintPlan computes a deterministic fingerprint over the plan's
// label and request sequence. Equal recipes yield equal fingerprints.
func (h *Hasher) FingerprintPlan(plan *domain.BuildPlan) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(plan.Derivation.String())
	_, _ = hasher.Write([]byte{0})

	for _, req := range plan.Requests {
		_, _ = hasher.WriteString(string(req.Role))
		_, _ = hasher.Write([]byte{':'})
		_, _ = hasher.WriteString(req.Identifier.String())
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeTreeHash hashes a directory tree. filepath.WalkDir visits
// entries in lexical order, so the result is deterministic.
func (h *Hasher) ComputeTreeHash(root string) (uint64, error) {
	hasher := xxhash.New()

	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})

		if d.IsDir() {
			return nil
		}

		fileHash, hashErr := h.ComputeFileHash(path)
		if hashErr != nil {
			return hashErr
		}
		_, _ = hasher.WriteString(fmt.Sprintf("%016x", fileHash))
		_, _ = hasher.Write([]byte{0})
		return nil
	})
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash tree"), "root", root)
	}

	return hasher.Sum64(), nil
}
