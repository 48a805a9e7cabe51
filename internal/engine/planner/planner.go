// Package planner evaluates recipes into build plans.
package planner

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a single evaluation.
type Options struct {
	// Locked resolves inputs from the lockfile only; an unpinned input
	// is an error instead of a catalog query.
	Locked bool

	// Dir is the workspace root directory holding the lockfile.
	// Required when Locked is set.
	Dir string
}

// Planner turns a recipe into a build plan by resolving every declared
// input against the catalog or the lockfile.
type Planner struct {
	resolver  ports.CatalogResolver
	locks     ports.LockStoreOpener
	hasher    ports.Hasher
	telemetry ports.Telemetry
}

// New creates a new Planner.
func New(
	resolver ports.CatalogResolver,
	locks ports.LockStoreOpener,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
) *Planner {
	return &Planner{
		resolver:  resolver,
		locks:     locks,
		hasher:    hasher,
		telemetry: telemetry,
	}
}

// Eval evaluates the recipe into a build plan. The plan requests exactly
// the declared inputs, native build inputs first, in declaration order.
// Resolution of distinct identifiers runs concurrently.
func (p *Planner) Eval(ctx context.Context, recipe *domain.Recipe, opts Options) (*domain.BuildPlan, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	var store ports.LockStore
	if opts.Locked {
		var err error
		store, err = p.locks.Open(opts.Dir)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open lockfile")
		}
	}

	plan := &domain.BuildPlan{
		Derivation: recipe.Name,
		Requests:   recipe.Inputs(),
		Resolved:   make(map[string]domain.ResolvedPackage),
	}

	// The same identifier may appear as both a tool and a library;
	// it is resolved once.
	unique := make(map[string]domain.DependencyRequest, len(plan.Requests))
	for _, req := range plan.Requests {
		unique[req.Identifier.String()] = req
	}

	var mu sync.Mutex
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for id, req := range unique {
		g.Go(func() error {
			pkg, err := p.resolveOne(groupCtx, req, store)
			if err != nil {
				return err
			}

			mu.Lock()
			plan.Resolved[id] = pkg
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Planner) resolveOne(ctx context.Context, req domain.DependencyRequest, store ports.LockStore) (domain.ResolvedPackage, error) {
	_, vertex := p.telemetry.Record(ctx, "resolve "+req.Identifier.String())

	if store != nil {
		pinned, err := store.Get(req.Name())
		if err != nil {
			vertex.Complete(err)
			return domain.ResolvedPackage{}, err
		}
		if pinned == nil {
			err := zerr.With(domain.ErrUnpinnedInput, "identifier", req.Identifier.String())
			vertex.Complete(err)
			return domain.ResolvedPackage{}, err
		}
		vertex.Cached()
		return *pinned, nil
	}

	pkg, err := p.resolver.Resolve(ctx, req.Name(), req.VersionConstraint())
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to resolve input"), "identifier", req.Identifier.String())
		vertex.Complete(err)
		return domain.ResolvedPackage{}, err
	}

	vertex.Complete(nil)
	return pkg, nil
}

// Fingerprint returns the deterministic fingerprint of a plan.
func (p *Planner) Fingerprint(plan *domain.BuildPlan) string {
	return p.hasher.FingerprintPlan(plan)
}

// Lock resolves every input of the recipe against the catalog, pins the
// results in the workspace lockfile and returns the resulting snapshot.
func (p *Planner) Lock(ctx context.Context, recipe *domain.Recipe, dir string) (*domain.Lockfile, error) {
	plan, err := p.Eval(ctx, recipe, Options{})
	if err != nil {
		return nil, err
	}

	store, err := p.locks.Open(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open lockfile")
	}

	for _, pkg := range plan.Resolved {
		if err := store.Put(pkg); err != nil {
			return nil, zerr.Wrap(err, "failed to pin package")
		}
	}

	return store.All()
}
