// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ypms/internal/adapters/config"
	_ "go.trai.ch/ypms/internal/adapters/jsondb"
	_ "go.trai.ch/ypms/internal/adapters/logger"
	_ "go.trai.ch/ypms/internal/adapters/prompt"
	_ "go.trai.ch/ypms/internal/adapters/registry"
	_ "go.trai.ch/ypms/internal/adapters/shell"
	_ "go.trai.ch/ypms/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/ypms/internal/app"
	_ "go.trai.ch/ypms/internal/engine/depindex"
	_ "go.trai.ch/ypms/internal/engine/executor"
	_ "go.trai.ch/ypms/internal/engine/guard"
	_ "go.trai.ch/ypms/internal/engine/planner"
)
