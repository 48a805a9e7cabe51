package nix

import "time"

// buildResults parses the JSON output of `nix build --json`.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// cacheEntry is one cached catalog resolution.
type cacheEntry struct {
	Name      string                 `json:"name"`
	Version   string                 `json:"version"`
	Systems   map[string]SystemCache `json:"systems"`
	Timestamp time.Time              `json:"timestamp"`
}

// SystemCache holds the cached pin for one system architecture.
type SystemCache struct {
	FlakeInstallable FlakeInstallable `json:"flake_installable"`
}

// catalogResponse is the response of the catalog's v2/resolve endpoint.
type catalogResponse struct {
	Name    string                    `json:"name"`
	Version string                    `json:"version"`
	Summary string                    `json:"summary"`
	Systems map[string]SystemResponse `json:"systems"`
}

// SystemResponse is the per-system part of a catalog response.
type SystemResponse struct {
	FlakeInstallable FlakeInstallable `json:"flake_installable"`
	LastUpdated      string           `json:"last_updated"`
}

// FlakeInstallable references an attribute inside a pinned flake.
type FlakeInstallable struct {
	Ref      FlakeRef `json:"ref"`
	AttrPath string   `json:"attr_path"`
}

// FlakeRef is the git reference of the flake.
type FlakeRef struct {
	Type  string `json:"type"`
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Rev   string `json:"rev"`
}
