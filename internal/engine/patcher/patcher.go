// Package patcher rewrites workspace dependency trees with replacement sources.
package patcher

import (
	"context"
	"path/filepath"

	"go.trai.ch/patchwork/internal/adapters/config"
	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

// VendorDirName is the directory under the workspace root that holds
// vendored copies of patched packages.
const VendorDirName = "patchwork"

// Patcher applies dependency replacements across a workspace.
//
// A dependency named in a replacement spec is pointed at its git URL.
// Every package that transitively depends on a replaced dependency is
// vendored under the workspace root and its vendored recipe rewritten,
// so dependents pick up the patched copy by path. The root recipe is
// rewritten in place.
type Patcher struct {
	loader    ports.RecipeLoader
	writer    ports.RecipeWriter
	vendorer  ports.Vendorer
	hasher    ports.Hasher
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new Patcher.
func New(
	loader ports.RecipeLoader,
	writer ports.RecipeWriter,
	vendorer ports.Vendorer,
	hasher ports.Hasher,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Patcher {
	return &Patcher{
		loader:    loader,
		writer:    writer,
		vendorer:  vendorer,
		hasher:    hasher,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Patch loads the workspace around cwd and applies the given
// name=url replacement specs.
func (p *Patcher) Patch(ctx context.Context, cwd string, replaceSpecs []string) error {
	replace := make(map[string]domain.PatchSource, len(replaceSpecs))
	for _, spec := range replaceSpecs {
		name, src, err := domain.ParsePatchSpec(spec)
		if err != nil {
			return err
		}
		replace[name] = src
	}

	graph, err := p.loader.LoadWorkspace(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load workspace")
	}

	root, ok := graph.Root()
	if !ok {
		return zerr.New("workspace has no root package")
	}

	vendorRoot := filepath.Join(root.Dir.String(), VendorDirName)
	if err := p.vendorer.EnsureRoot(vendorRoot); err != nil {
		return err
	}

	// Packages are visited dependencies-first, so by the time a
	// dependent is processed the patched location of each of its
	// dependencies is already known.
	patched := make(map[domain.InternedString]domain.PatchSource)

	for pkg := range graph.Walk() {
		overrides := p.collectOverrides(pkg, replace, patched)
		if len(overrides) == 0 {
			continue
		}

		if pkg.Name == root.Name {
			if err := p.rewriteRoot(ctx, root, overrides); err != nil {
				return err
			}
			continue
		}

		source, err := p.vendorPackage(ctx, pkg, vendorRoot, overrides)
		if err != nil {
			return err
		}
		patched[pkg.Name] = source
	}

	return nil
}

// collectOverrides determines the replacement source for each of the
// package's dependencies. Explicit replacement specs win over patches
// declared in the recipe, which win over transitively vendored copies.
func (p *Patcher) collectOverrides(
	pkg domain.Package,
	replace map[string]domain.PatchSource,
	patched map[domain.InternedString]domain.PatchSource,
) map[string]domain.PatchSource {
	overrides := make(map[string]domain.PatchSource)

	for _, dep := range pkg.Recipe.Dependencies {
		name := dep.Name.String()

		if src, ok := replace[name]; ok {
			overrides[name] = src
			continue
		}
		if src, ok := pkg.Recipe.Patches[name]; ok {
			overrides[name] = src
			continue
		}
		if src, ok := patched[dep.Name]; ok {
			overrides[name] = src
		}
	}

	return overrides
}

func (p *Patcher) rewriteRoot(ctx context.Context, root domain.Package, overrides map[string]domain.PatchSource) error {
	_, vertex := p.telemetry.Record(ctx, "patch "+root.Name.String())

	path := filepath.Join(root.Dir.String(), config.RecipeFilename)
	if err := p.writer.Rewrite(path, overrides); err != nil {
		vertex.Complete(err)
		return zerr.With(zerr.Wrap(err, "failed to rewrite root recipe"), "package", root.Name.String())
	}

	p.logger.Info("Patched " + root.Name.String())
	vertex.Complete(nil)
	return nil
}

func (p *Patcher) vendorPackage(
	ctx context.Context,
	pkg domain.Package,
	vendorRoot string,
	overrides map[string]domain.PatchSource,
) (domain.PatchSource, error) {
	_, vertex := p.telemetry.Record(ctx, "vendor "+pkg.Name.String())

	dest := filepath.Join(vendorRoot, pkg.Name.String())

	if p.vendorer.Exists(dest) {
		p.logger.Info("Skipping " + pkg.Name.String())
		vertex.Cached()
	} else {
		p.logger.Info("Copying " + pkg.Name.String() + "...")
		if err := p.vendorer.Vendor(pkg.Dir.String(), dest); err != nil {
			vertex.Complete(err)
			return domain.PatchSource{}, zerr.With(zerr.Wrap(err, "failed to vendor package"), "package", pkg.Name.String())
		}
		if err := p.verifyCopy(pkg.Dir.String(), dest, pkg.Name.String()); err != nil {
			vertex.Complete(err)
			return domain.PatchSource{}, err
		}
		vertex.Complete(nil)
	}

	path := filepath.Join(dest, config.RecipeFilename)
	if err := p.writer.Rewrite(path, overrides); err != nil {
		return domain.PatchSource{}, zerr.With(zerr.Wrap(err, "failed to rewrite vendored recipe"), "package", pkg.Name.String())
	}

	return domain.PathPatch(dest), nil
}

// verifyCopy checks the fresh vendored tree against its source. The
// comparison runs before the vendored recipe is rewritten, so the two
// trees must hash identically.
func (p *Patcher) verifyCopy(src, dest, name string) error {
	srcHash, err := p.hasher.ComputeTreeHash(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash source tree"), "package", name)
	}
	destHash, err := p.hasher.ComputeTreeHash(dest)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash vendored tree"), "package", name)
	}
	if srcHash != destHash {
		return zerr.With(domain.ErrVendorMismatch, "package", name)
	}
	return nil
}
