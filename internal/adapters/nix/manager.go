package nix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.Realizer using the Nix CLI.
type Manager struct{}

// NewManager creates a new Realizer backed by the Nix CLI.
func NewManager() *Manager {
	return &Manager{}
}

var _ ports.Realizer = (*Manager)(nil)

// Realize ensures the package pinned by src is present in the Nix store
// and returns its output store path.
func (m *Manager) Realize(ctx context.Context, src domain.NixSource) (string, error) {
	// github:OWNER/REPO/REV#ATTR
	flakeRef := fmt.Sprintf("github:%s/%s/%s#%s",
		src.Owner.String(), src.Repo.String(), src.Rev.String(), src.AttrPath.String())

	// --no-link avoids result symlinks in the working directory.
	//nolint:gosec // flakeRef is constructed from catalog-pinned values
	cmd := exec.CommandContext(ctx, "nix", "build", "--json", "--no-link", flakeRef)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		// nix reports download and build progress on stderr.
		cmd.Stderr = io.MultiWriter(&stderr, vertex.Stderr())
	}

	output, err := cmd.Output()
	if err != nil {
		nixErr := zerr.Wrap(err, domain.ErrRealizeFailed.Error())
		nixErr = zerr.With(nixErr, "flake_ref", flakeRef)
		return "", zerr.With(nixErr, "stderr", strings.TrimSpace(stderr.String()))
	}

	var results buildResults
	if err := json.Unmarshal(output, &results); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to parse nix build JSON output"), "flake_ref", flakeRef)
	}

	if len(results) == 0 {
		emptyErr := zerr.With(domain.ErrRealizeFailed, "flake_ref", flakeRef)
		return "", zerr.With(emptyErr, "reason", "empty build results from nix build")
	}

	storePath, ok := results[0].Outputs["out"]
	if !ok || storePath == "" {
		outErr := zerr.With(domain.ErrRealizeFailed, "flake_ref", flakeRef)
		return "", zerr.With(outErr, "reason", "no 'out' output found in build results")
	}

	return storePath, nil
}
