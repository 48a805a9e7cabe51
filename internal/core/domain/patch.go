package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PatchKind discriminates the two sources a dependency can be replaced with.
type PatchKind int

const (
	// PatchGit replaces a dependency with a git repository URL.
	PatchGit PatchKind = iota

	// PatchPath replaces a dependency with a local directory,
	// typically a vendored copy under the workspace root.
	PatchPath
)

// PatchSource describes where a replaced dependency should be taken from.
type PatchSource struct {
	Kind PatchKind

	// URL is set when Kind is PatchGit.
	URL InternedString

	// Path is set when Kind is PatchPath. Always an absolute path.
	Path InternedString
}

// GitPatch returns a PatchSource pointing at a git repository.
func GitPatch(url string) PatchSource {
	return PatchSource{Kind: PatchGit, URL: NewInternedString(url)}
}

// PathPatch returns a PatchSource pointing at a local directory.
func PathPatch(path string) PatchSource {
	return PatchSource{Kind: PatchPath, Path: NewInternedString(path)}
}

// ParsePatchSpec parses a name=url replacement spec as passed to --replace.
func ParsePatchSpec(spec string) (name string, source PatchSource, err error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", PatchSource{}, zerr.With(ErrBadPatchSpec, "spec", spec)
	}
	return parts[0], GitPatch(parts[1]), nil
}
