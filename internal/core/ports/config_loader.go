package ports

import "go.trai.ch/drift/internal/core/domain"

// ConfigLoader defines the interface for loading the dependency configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory.
	Load(cwd string) (*domain.Workspace, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing drift.work.yaml or drift.yaml.
	DiscoverRoot(cwd string) (string, error)
}
