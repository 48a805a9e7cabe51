// Package nix implements the package catalog and realization adapters
// backed by nixpkgs and the Nix CLI.
package nix

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultCatalogURL is the NixHub-compatible resolve endpoint.
	DefaultCatalogURL = "https://search.devbox.sh/v2/resolve"

	resolveTimeout = 30 * time.Second

	dirPerm  = 0o750
	filePerm = 0o600
)

// Resolver implements ports.CatalogResolver against a NixHub-style HTTP
// catalog with an on-disk JSON resolution cache.
type Resolver struct {
	baseURL   string
	client    *http.Client
	cachePath string

	mu sync.Mutex
}

// NewResolver creates a resolver with the default catalog endpoint and a
// cache file under the user cache directory.
func NewResolver() (*Resolver, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine cache directory")
	}
	return NewResolverWithCache(DefaultCatalogURL, filepath.Join(cacheDir, "patchwork", "catalog.json")), nil
}

// NewResolverWithCache creates a resolver with explicit endpoint and
// cache file locations.
func NewResolverWithCache(baseURL, cachePath string) *Resolver {
	return &Resolver{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: resolveTimeout},
		cachePath: filepath.Clean(cachePath),
	}
}

var _ ports.CatalogResolver = (*Resolver)(nil)

// Resolve looks up a package name and version constraint in the catalog.
// The on-disk cache is consulted first.
func (r *Resolver) Resolve(ctx context.Context, name, version string) (domain.ResolvedPackage, error) {
	key := name + "@" + version

	if entry, ok := r.checkCache(key); ok {
		return entryToDomain(entry), nil
	}

	resp, err := r.query(ctx, name, version)
	if err != nil {
		return domain.ResolvedPackage{}, err
	}

	entry := cacheEntry{
		Name:      resp.Name,
		Version:   resp.Version,
		Systems:   make(map[string]SystemCache, len(resp.Systems)),
		Timestamp: time.Now().UTC(),
	}
	for system, sys := range resp.Systems {
		entry.Systems[system] = SystemCache{FlakeInstallable: sys.FlakeInstallable}
	}

	if err := r.updateCache(key, entry); err != nil {
		return domain.ResolvedPackage{}, zerr.Wrap(err, "failed to update catalog cache")
	}

	return entryToDomain(entry), nil
}

func (r *Resolver) query(ctx context.Context, name, version string) (*catalogResponse, error) {
	endpoint := r.baseURL + "?name=" + url.QueryEscape(name) + "&version=" + url.QueryEscape(version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build catalog request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "catalog request failed"), "package", name)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		notFound := zerr.With(domain.ErrUnknownPackage, "package", name)
		return nil, zerr.With(notFound, "version", version)
	}
	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.New("catalog returned unexpected status"), "status", resp.StatusCode)
		return nil, zerr.With(statusErr, "package", name)
	}

	var parsed catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode catalog response"), "package", name)
	}

	if len(parsed.Systems) == 0 {
		notFound := zerr.With(domain.ErrUnknownPackage, "package", name)
		return nil, zerr.With(notFound, "reason", "catalog response lists no systems")
	}

	return &parsed, nil
}

func entryToDomain(entry cacheEntry) domain.ResolvedPackage {
	pkg := domain.ResolvedPackage{
		Name:    domain.NewInternedString(entry.Name),
		Version: domain.NewInternedString(entry.Version),
		Systems: make(map[string]domain.NixSource, len(entry.Systems)),
	}
	for system, sys := range entry.Systems {
		pkg.Systems[system] = domain.NixSource{
			Owner:    domain.NewInternedString(sys.FlakeInstallable.Ref.Owner),
			Repo:     domain.NewInternedString(sys.FlakeInstallable.Ref.Repo),
			Rev:      domain.NewInternedString(sys.FlakeInstallable.Ref.Rev),
			AttrPath: domain.NewInternedString(sys.FlakeInstallable.AttrPath),
		}
	}
	return pkg
}

type cacheFile map[string]cacheEntry

func (r *Resolver) checkCache(key string) (cacheEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.cachePath)
	if err != nil {
		return cacheEntry{}, false
	}
	defer func() { _ = f.Close() }()

	var cache cacheFile
	if err := json.NewDecoder(f).Decode(&cache); err != nil {
		return cacheEntry{}, false
	}

	entry, ok := cache[key]
	return entry, ok
}

func (r *Resolver) updateCache(key string, entry cacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache := make(cacheFile)
	content, err := os.ReadFile(r.cachePath)
	if err == nil {
		// A corrupted cache is discarded and rebuilt.
		_ = json.Unmarshal(content, &cache)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cache[key] = entry

	if err := os.MkdirAll(filepath.Dir(r.cachePath), dirPerm); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath, data, filePerm)
}
