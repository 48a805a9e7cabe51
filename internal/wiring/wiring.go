// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/patchwork/internal/adapters/config"
	_ "go.trai.ch/patchwork/internal/adapters/fs"
	_ "go.trai.ch/patchwork/internal/adapters/lock"
	_ "go.trai.ch/patchwork/internal/adapters/logger"
	_ "go.trai.ch/patchwork/internal/adapters/nix"
	_ "go.trai.ch/patchwork/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/patchwork/internal/app"
	_ "go.trai.ch/patchwork/internal/engine/patcher"
	_ "go.trai.ch/patchwork/internal/engine/planner"
)
