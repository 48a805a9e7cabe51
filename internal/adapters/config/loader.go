// Package config provides the YAML recipe loader and writer for patchwork.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// RecipeFilename is the canonical recipe file name.
const RecipeFilename = "recipe.yaml"

// Loader implements ports.RecipeLoader using YAML files on disk.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new recipe loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.RecipeLoader = (*Loader)(nil)

// Load reads and validates the recipe file at path.
func (l *Loader) Load(path string) (*domain.Recipe, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read recipe file"), "path", path)
	}

	var file recipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse recipe file"), "path", path)
	}

	recipe := &domain.Recipe{
		Name:              domain.NewInternedString(file.Name),
		Version:           domain.NewInternedString(file.Version),
		NativeBuildInputs: internStrings(file.NativeBuildInputs),
		BuildInputs:       internStrings(file.BuildInputs),
	}

	for _, dep := range file.Dependencies {
		recipe.Dependencies = append(recipe.Dependencies, domain.DependencyRef{
			Name: domain.NewInternedString(dep.Name),
			Path: domain.NewInternedString(dep.Path),
		})
	}

	if len(file.Patches) > 0 {
		recipe.Patches = make(map[string]domain.PatchSource, len(file.Patches))
		for name, url := range file.Patches {
			recipe.Patches[name] = domain.GitPatch(url)
		}
	}

	if err := recipe.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return recipe, nil
}

// FindRoot walks up from cwd to locate the nearest directory containing
// a recipe file.
func FindRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(dir, RecipeFilename)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return dir, nil
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(statErr, "failed to stat recipe file"), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.New("no recipe file found in this directory or any parent"), "start", cwd)
		}
		dir = parent
	}
}

// LoadWorkspace discovers the workspace root starting from cwd and loads
// the full dependency graph. The returned graph is validated.
func (l *Loader) LoadWorkspace(cwd string) (*domain.Graph, error) {
	root, err := FindRoot(cwd)
	if err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	loaded := make(map[string]bool)

	var load func(dir string) (domain.InternedString, error)
	load = func(dir string) (domain.InternedString, error) {
		recipe, err := l.Load(filepath.Join(dir, RecipeFilename))
		if err != nil {
			return domain.InternedString{}, err
		}

		if loaded[dir] {
			return recipe.Name, nil
		}
		loaded[dir] = true

		if err := g.AddPackage(domain.Package{
			Name:   recipe.Name,
			Dir:    domain.NewInternedString(dir),
			Recipe: recipe,
		}); err != nil {
			return domain.InternedString{}, err
		}

		for _, dep := range recipe.Dependencies {
			// Git-pinned entries live outside the workspace; only
			// path entries are traversed.
			if dep.Path.String() == "" {
				continue
			}
			depPath := dep.Path.String()
			depDir := depPath
			if !filepath.IsAbs(depPath) {
				depDir = filepath.Join(dir, depPath)
			}
			if loaded[depDir] {
				continue
			}
			name, err := load(depDir)
			if err != nil {
				return domain.InternedString{}, err
			}
			if name != dep.Name {
				loadErr := zerr.With(domain.ErrMissingDependency, "declared", dep.Name.String())
				loadErr = zerr.With(loadErr, "found", name.String())
				return domain.InternedString{}, zerr.With(loadErr, "dir", depDir)
			}
		}

		return recipe.Name, nil
	}

	rootName, err := load(root)
	if err != nil {
		return nil, err
	}
	g.SetRoot(rootName)

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
