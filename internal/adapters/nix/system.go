package nix

import "runtime"

// CurrentSystem returns the Nix system string for the host,
// e.g. "x86_64-linux" or "aarch64-darwin".
func CurrentSystem() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return arch + "-" + runtime.GOOS
}
