// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/drift/internal/adapters/cache"
	_ "go.trai.ch/drift/internal/adapters/config"
	_ "go.trai.ch/drift/internal/adapters/logger"
	_ "go.trai.ch/drift/internal/adapters/repository"
	_ "go.trai.ch/drift/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/drift/internal/app"
)
