// Package app implements the application layer for patchwork.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/patchwork/internal/adapters/config"
	"go.trai.ch/patchwork/internal/adapters/nix"
	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/patchwork/internal/engine/patcher"
	"go.trai.ch/patchwork/internal/engine/planner"
	"go.trai.ch/zerr"
)

// App wires the engines and adapters behind the CLI commands.
type App struct {
	loader    ports.RecipeLoader
	planner   *planner.Planner
	patcher   *patcher.Patcher
	realizer  ports.Realizer
	telemetry ports.Telemetry
	logger    ports.Logger

	stdout io.Writer
}

// New creates a new App instance.
func New(
	loader ports.RecipeLoader,
	plan *planner.Planner,
	patch *patcher.Patcher,
	realizer ports.Realizer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		planner:   plan,
		patcher:   patch,
		realizer:  realizer,
		telemetry: telemetry,
		logger:    logger,
		stdout:    os.Stdout,
	}
}

// SetStdout redirects plan and build output. Used for testing.
func (a *App) SetStdout(w io.Writer) {
	a.stdout = w
}

// PlanOptions configures the Plan operation.
type PlanOptions struct {
	// Locked resolves from the lockfile only.
	Locked bool

	// Expression prints the generated Nix derivation expression
	// instead of the plan summary.
	Expression bool
}

// Plan evaluates the workspace root recipe and prints the resulting
// build plan or its derivation expression.
func (a *App) Plan(ctx context.Context, cwd string, opts PlanOptions) error {
	recipe, root, err := a.loadRootRecipe(cwd)
	if err != nil {
		return err
	}

	plan, err := a.planner.Eval(ctx, recipe, planner.Options{Locked: opts.Locked, Dir: root})
	if err != nil {
		return zerr.Wrap(err, "plan evaluation failed")
	}

	if opts.Expression {
		_, err := fmt.Fprint(a.stdout, nix.GenerateDerivation(plan))
		return err
	}

	return a.printPlan(plan)
}

func (a *App) printPlan(plan *domain.BuildPlan) error {
	fmt.Fprintf(a.stdout, "derivation %s (%s)\n", plan.Derivation.String(), a.planner.Fingerprint(plan))
	for _, req := range plan.Requests {
		pkg := plan.Resolved[req.Identifier.String()]
		fmt.Fprintf(a.stdout, "  %-7s %s -> %s@%s\n",
			req.Role, req.Identifier.String(), pkg.Name.String(), pkg.Version.String())
	}
	return nil
}

// Lock resolves every input of the root recipe, pins the results in the
// workspace lockfile and prints the pinned versions.
func (a *App) Lock(ctx context.Context, cwd string) error {
	recipe, root, err := a.loadRootRecipe(cwd)
	if err != nil {
		return err
	}

	lf, err := a.planner.Lock(ctx, recipe, root)
	if err != nil {
		return zerr.Wrap(err, "failed to lock inputs")
	}

	names := make([]string, 0, len(lf.Packages))
	for name := range lf.Packages {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(a.stdout, "%s %s\n", name, lf.Packages[name].Version.String())
	}

	a.logger.Info("Pinned " + recipe.Name.String())
	return nil
}

// Patch applies name=url replacement specs across the workspace.
func (a *App) Patch(ctx context.Context, cwd string, replaceSpecs []string) error {
	return a.patcher.Patch(ctx, cwd, replaceSpecs)
}

// Build evaluates the root recipe and realizes every input for the
// given system, printing the resulting store paths.
func (a *App) Build(ctx context.Context, cwd, system string, locked bool) error {
	recipe, root, err := a.loadRootRecipe(cwd)
	if err != nil {
		return err
	}

	plan, err := a.planner.Eval(ctx, recipe, planner.Options{Locked: locked, Dir: root})
	if err != nil {
		return zerr.Wrap(err, "plan evaluation failed")
	}

	for _, req := range plan.Requests {
		pkg := plan.Resolved[req.Identifier.String()]
		src, err := pkg.SourceFor(system)
		if err != nil {
			return err
		}

		rctx, vertex := a.telemetry.Record(ctx, "realize "+req.Identifier.String())
		storePath, err := a.realizer.Realize(rctx, src)
		if err != nil {
			vertex.Complete(err)
			return err
		}
		vertex.Complete(nil)
		fmt.Fprintf(a.stdout, "%s %s\n", req.Identifier.String(), storePath)
	}

	return nil
}

func (a *App) loadRootRecipe(cwd string) (*domain.Recipe, string, error) {
	root, err := config.FindRoot(cwd)
	if err != nil {
		return nil, "", err
	}

	recipe, err := a.loader.Load(filepath.Join(root, config.RecipeFilename))
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load recipe")
	}
	return recipe, root, nil
}
