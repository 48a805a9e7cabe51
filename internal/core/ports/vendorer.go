package ports

// Vendorer copies package sources into the workspace vendor directory.
type Vendorer interface {
	// Vendor recursively copies the tree at src to dst.
	// dst must not exist yet.
	Vendor(src, dst string) error

	// EnsureRoot creates the vendor root directory if needed.
	// A non-directory file at the path is an error.
	EnsureRoot(path string) error

	// Exists reports whether a vendored copy is already present at path.
	Exists(path string) bool
}
