// Package domain contains the core domain models for build recipes,
// workspaces and plans.
package domain

import "go.trai.ch/zerr"

// Recipe is a declarative build descriptor for a single package.
// It is authored once, read at invocation time and never mutated afterwards.
type Recipe struct {
	// Name identifies the produced package. Must be non-empty.
	Name InternedString

	// Version is the declared package version. Optional.
	Version InternedString

	// NativeBuildInputs lists tool identifiers required only while
	// building; they are not linked into the output.
	NativeBuildInputs []InternedString

	// BuildInputs lists library identifiers required both to build
	// and to link against.
	BuildInputs []InternedString

	// Dependencies references other workspace packages by name and
	// relative path.
	Dependencies []DependencyRef

	// Patches maps a dependency name to a replacement source declared
	// in the recipe itself. CLI-provided replacements take precedence.
	Patches map[string]PatchSource
}

// DependencyRef points at another recipe inside the same workspace.
type DependencyRef struct {
	// Name is the dependency's package name.
	Name InternedString

	// Path is the directory holding the dependency's recipe,
	// relative to the referencing recipe.
	Path InternedString
}

// Inputs returns all declared inputs in declaration order:
// native build inputs first, then build inputs.
func (r *Recipe) Inputs() []DependencyRequest {
	reqs := make([]DependencyRequest, 0, len(r.NativeBuildInputs)+len(r.BuildInputs))
	for _, in := range r.NativeBuildInputs {
		reqs = append(reqs, DependencyRequest{Identifier: in, Role: RoleNative})
	}
	for _, in := range r.BuildInputs {
		reqs = append(reqs, DependencyRequest{Identifier: in, Role: RoleRuntime})
	}
	return reqs
}

// Validate checks the structural invariants of the recipe: the name is
// non-empty and neither input list repeats an identifier.
func (r *Recipe) Validate() error {
	if r.Name.String() == "" {
		return ErrEmptyRecipeName
	}
	if err := checkDuplicates(r.NativeBuildInputs, "nativeBuildInputs"); err != nil {
		return err
	}
	return checkDuplicates(r.BuildInputs, "buildInputs")
}

func checkDuplicates(inputs []InternedString, list string) error {
	seen := make(map[InternedString]bool, len(inputs))
	for _, in := range inputs {
		if seen[in] {
			err := zerr.With(ErrDuplicateInput, "identifier", in.String())
			return zerr.With(err, "list", list)
		}
		seen[in] = true
	}
	return nil
}
