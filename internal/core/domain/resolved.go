package domain

import "go.trai.ch/zerr"

// NixSource pins a package to an exact nixpkgs revision for one system.
type NixSource struct {
	// Owner is the repository owner (e.g., "NixOS").
	Owner InternedString

	// Repo is the repository name (e.g., "nixpkgs").
	Repo InternedString

	// Rev is the git revision pinning the exact package set.
	Rev InternedString

	// AttrPath is the attribute path to the package (e.g., "openssl_3").
	AttrPath InternedString
}

// ResolvedPackage is a catalog resolution: one package name and version
// with its per-system pin.
type ResolvedPackage struct {
	// Name is the canonical package name (e.g., "openssl").
	Name InternedString

	// Version is the resolved version string (e.g., "3.0.13").
	Version InternedString

	// Systems maps system strings (e.g., "x86_64-linux") to their pin.
	Systems map[string]NixSource
}

// SourceFor returns the pin for the given system.
func (p *ResolvedPackage) SourceFor(system string) (NixSource, error) {
	src, ok := p.Systems[system]
	if !ok {
		err := zerr.With(ErrUnsupportedSystem, "package", p.Name.String())
		err = zerr.With(err, "version", p.Version.String())
		return NixSource{}, zerr.With(err, "requested_system", system)
	}
	return src, nil
}
