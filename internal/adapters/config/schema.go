package config

// recipeFile represents the structure of a recipe.yaml file.
type recipeFile struct {
	Name              string            `yaml:"name"`
	Version           string            `yaml:"version,omitempty"`
	NativeBuildInputs []string          `yaml:"nativeBuildInputs,omitempty"`
	BuildInputs       []string          `yaml:"buildInputs,omitempty"`
	Dependencies      []dependencyDTO   `yaml:"dependencies,omitempty"`
	Patches           map[string]string `yaml:"patches,omitempty"`
}

// dependencyDTO represents one workspace dependency entry.
// Exactly one of Path or Git is set after patching; Version may
// accompany a plain entry.
type dependencyDTO struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path,omitempty"`
	Git     string `yaml:"git,omitempty"`
	Version string `yaml:"version,omitempty"`
}
