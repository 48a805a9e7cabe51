package config

import (
	"os"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const recipeFilePerm = 0o644

// Writer implements ports.RecipeWriter using YAML files on disk.
type Writer struct{}

// NewWriter creates a new recipe writer.
func NewWriter() *Writer {
	return &Writer{}
}

var _ ports.RecipeWriter = (*Writer)(nil)

// Save serializes the recipe to the given path.
// A saved recipe loads back equivalent: same name, same input sequences.
func (w *Writer) Save(recipe *domain.Recipe, path string) error {
	file := recipeFile{
		Name:              recipe.Name.String(),
		Version:           recipe.Version.String(),
		NativeBuildInputs: plainStrings(recipe.NativeBuildInputs),
		BuildInputs:       plainStrings(recipe.BuildInputs),
	}

	for _, dep := range recipe.Dependencies {
		file.Dependencies = append(file.Dependencies, dependencyDTO{
			Name: dep.Name.String(),
			Path: dep.Path.String(),
		})
	}

	if len(recipe.Patches) > 0 {
		file.Patches = make(map[string]string, len(recipe.Patches))
		for name, src := range recipe.Patches {
			if src.Kind == domain.PatchGit {
				file.Patches[name] = src.URL.String()
			}
		}
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return zerr.Wrap(err, "failed to serialize recipe")
	}

	//nolint:gosec // recipe files are not secrets
	if err := os.WriteFile(path, data, recipeFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write recipe file"), "path", path)
	}
	return nil
}

// Rewrite replaces dependency entries of the recipe file at path.
// For every named dependency the previous path, git and version pins are
// dropped and the entry is pointed at its patch source instead.
func (w *Writer) Rewrite(path string, overrides map[string]domain.PatchSource) error {
	if len(overrides) == 0 {
		return nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the workspace
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read recipe file"), "path", path)
	}

	var file recipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse recipe file"), "path", path)
	}

	for i := range file.Dependencies {
		src, ok := overrides[file.Dependencies[i].Name]
		if !ok {
			continue
		}

		file.Dependencies[i].Path = ""
		file.Dependencies[i].Git = ""
		file.Dependencies[i].Version = ""

		switch src.Kind {
		case domain.PatchPath:
			file.Dependencies[i].Path = src.Path.String()
		case domain.PatchGit:
			file.Dependencies[i].Git = src.URL.String()
		}
	}

	out, err := yaml.Marshal(&file)
	if err != nil {
		return zerr.Wrap(err, "failed to serialize recipe")
	}

	//nolint:gosec // recipe files are not secrets
	if err := os.WriteFile(path, out, recipeFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write recipe file"), "path", path)
	}
	return nil
}

func plainStrings(strs []domain.InternedString) []string {
	if len(strs) == 0 {
		return nil
	}
	res := make([]string, len(strs))
	for i, s := range strs {
		res[i] = s.String()
	}
	return res
}
