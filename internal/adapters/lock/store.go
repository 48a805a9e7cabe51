// Package lock persists resolved package pins in a JSON lockfile.
package lock

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultFilename is the lockfile name next to the root recipe.
const DefaultFilename = "patchwork.lock"

// lockfileDoc is the serialized lockfile layout.
type lockfileDoc struct {
	Version  int                       `json:"version"`
	Packages map[string]resolvedRecord `json:"packages"`
}

type resolvedRecord struct {
	Name    string                  `json:"name"`
	Version string                  `json:"version"`
	Systems map[string]systemRecord `json:"systems"`
}

type systemRecord struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Rev      string `json:"rev"`
	AttrPath string `json:"attr_path"`
}

// Store implements ports.LockStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.ResolvedPackage
}

// NewStore creates a lock store backed by the file at the given path.
// A missing file yields an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.ResolvedPackage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

var _ ports.LockStore = (*Store)(nil)

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read lockfile")
	}

	if len(data) == 0 {
		return nil
	}

	var doc lockfileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, "failed to unmarshal lockfile")
	}

	for name, rec := range doc.Packages {
		s.cache[name] = recordToDomain(rec)
	}
	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := lockfileDoc{
		Version:  domain.LockfileVersion,
		Packages: make(map[string]resolvedRecord, len(s.cache)),
	}
	for name, pkg := range s.cache {
		doc.Packages[name] = domainToRecord(pkg)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for lockfile")
	}

	//nolint:gosec // lockfiles are not secrets
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}

	return nil
}

// Get retrieves the pin for a package name.
func (s *Store) Get(name string) (*domain.ResolvedPackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pkg, ok := s.cache[name]
	if !ok {
		return nil, nil
	}
	return &pkg, nil
}

// Put stores or replaces a pin and flushes the lockfile to disk.
func (s *Store) Put(pkg domain.ResolvedPackage) error {
	s.mu.Lock()
	s.cache[pkg.Name.String()] = pkg
	s.mu.Unlock()

	return s.save()
}

// All returns the complete lockfile snapshot.
func (s *Store) All() (*domain.Lockfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lf := domain.NewLockfile()
	for name, pkg := range s.cache {
		lf.Packages[name] = pkg
	}
	return lf, nil
}

func recordToDomain(rec resolvedRecord) domain.ResolvedPackage {
	pkg := domain.ResolvedPackage{
		Name:    domain.NewInternedString(rec.Name),
		Version: domain.NewInternedString(rec.Version),
		Systems: make(map[string]domain.NixSource, len(rec.Systems)),
	}
	for system, sys := range rec.Systems {
		pkg.Systems[system] = domain.NixSource{
			Owner:    domain.NewInternedString(sys.Owner),
			Repo:     domain.NewInternedString(sys.Repo),
			Rev:      domain.NewInternedString(sys.Rev),
			AttrPath: domain.NewInternedString(sys.AttrPath),
		}
	}
	return pkg
}

func domainToRecord(pkg domain.ResolvedPackage) resolvedRecord {
	rec := resolvedRecord{
		Name:    pkg.Name.String(),
		Version: pkg.Version.String(),
		Systems: make(map[string]systemRecord, len(pkg.Systems)),
	}
	for system, src := range pkg.Systems {
		rec.Systems[system] = systemRecord{
			Owner:    src.Owner.String(),
			Repo:     src.Repo.String(),
			Rev:      src.Rev.String(),
			AttrPath: src.AttrPath.String(),
		}
	}
	return rec
}
