package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyRecipeName is returned when a recipe declares no name.
	ErrEmptyRecipeName = zerr.New("recipe name must not be empty")

	// ErrDuplicateInput is returned when an input list repeats an identifier.
	ErrDuplicateInput = zerr.New("duplicate input identifier")

	// ErrPackageAlreadyExists is returned when a workspace declares two packages with the same name.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrMissingDependency is returned when a recipe references a dependency that is not part of the workspace.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the workspace dependency graph contains a loop.
	ErrCycleDetected = zerr.New("dependency loop detected")

	// ErrUnknownPackage is returned when an input identifier does not resolve in the catalog.
	ErrUnknownPackage = zerr.New("package not found in catalog")

	// ErrUnsupportedSystem is returned when a resolved package carries no entry for the requested system.
	ErrUnsupportedSystem = zerr.New("unsupported system architecture")

	// ErrUnpinnedInput is returned in locked mode when an input has no lockfile entry.
	ErrUnpinnedInput = zerr.New("input not pinned in lockfile")

	// ErrBadPatchSpec is returned when a --replace value is not of the form name=url.
	ErrBadPatchSpec = zerr.New("invalid patch spec, expected name=url")

	// ErrVendorObstructed is returned when the vendor directory path exists but is not a directory.
	ErrVendorObstructed = zerr.New("vendor path exists but is not a directory")

	// ErrVendorMismatch is returned when a freshly vendored copy does not hash to the same tree as its source.
	ErrVendorMismatch = zerr.New("vendored copy does not match its source")

	// ErrRealizeFailed is returned when the nix CLI fails to realize a store path.
	ErrRealizeFailed = zerr.New("nix realization failed")
)
