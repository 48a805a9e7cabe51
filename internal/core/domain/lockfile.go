package domain

// LockfileVersion is the current lockfile schema version.
const LockfileVersion = 1

// Lockfile is a reproducible snapshot of every resolved input.
type Lockfile struct {
	// Version is the lockfile format version, kept for future schema
	// migrations.
	Version int

	// Packages maps canonical package names to their resolution.
	Packages map[string]ResolvedPackage
}

// NewLockfile returns an empty lockfile at the current schema version.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:  LockfileVersion,
		Packages: make(map[string]ResolvedPackage),
	}
}

// Pin records or replaces the resolution for a package.
func (l *Lockfile) Pin(pkg ResolvedPackage) {
	l.Packages[pkg.Name.String()] = pkg
}

// Lookup returns the pinned resolution for a package name, if any.
func (l *Lockfile) Lookup(name string) (ResolvedPackage, bool) {
	pkg, ok := l.Packages[name]
	return pkg, ok
}
