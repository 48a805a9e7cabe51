package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

const vendorDirPerm = 0o755

// Vendorer copies package trees into the workspace vendor directory.
type Vendorer struct{}

// NewVendorer creates a new Vendorer.
func NewVendorer() *Vendorer {
	return &Vendorer{}
}

var _ ports.Vendorer = (*Vendorer)(nil)

// EnsureRoot creates the vendor root directory if needed.
// A non-directory file at the path is an error.
func (v *Vendorer) EnsureRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.Mkdir(path, vendorDirPerm); mkErr != nil {
				return zerr.With(zerr.Wrap(mkErr, "failed to create vendor directory"), "path", path)
			}
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat vendor directory"), "path", path)
	}
	if !info.IsDir() {
		return zerr.With(domain.ErrVendorObstructed, "path", path)
	}
	return nil
}

// Exists reports whether a vendored copy is already present at path.
func (v *Vendorer) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Vendor recursively copies the tree at src to dst. dst must not exist.
func (v *Vendorer) Vendor(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat vendor source"), "path", src)
	}

	if info.IsDir() {
		return v.copyDir(src, dst)
	}
	return v.copyFile(src, dst, info)
}

func (v *Vendorer) copyDir(src, dst string) error {
	if err := os.Mkdir(dst, vendorDirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read directory"), "path", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := v.copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat entry"), "path", srcPath)
		}
		if err := v.copyFile(srcPath, dstPath, info); err != nil {
			return err
		}
	}

	return nil
}

func (v *Vendorer) copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src) //nolint:gosec // path is derived from the workspace
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // vendored files keep their source permissions
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination file"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}

	return out.Close()
}
