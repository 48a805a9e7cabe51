// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/patchwork/internal/core/domain"

// RecipeLoader loads recipe files into domain objects.
type RecipeLoader interface {
	// Load reads and validates the recipe file at path.
	Load(path string) (*domain.Recipe, error)

	// LoadWorkspace discovers the workspace root starting from cwd and
	// loads the full dependency graph. The returned graph is validated.
	LoadWorkspace(cwd string) (*domain.Graph, error)
}

// RecipeWriter persists recipes and rewrites dependency entries.
type RecipeWriter interface {
	// Save serializes the recipe to the given path. A recipe loaded
	// and saved again is equivalent: same name, same input sequences.
	Save(recipe *domain.Recipe, path string) error

	// Rewrite replaces dependency entries of the recipe file at path.
	// Each named dependency is pointed at its patch source; any
	// previous path, git or version pin for that entry is dropped.
	Rewrite(path string, overrides map[string]domain.PatchSource) error
}
