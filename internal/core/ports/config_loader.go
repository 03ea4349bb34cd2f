package ports

import "go.trai.ch/ypms/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the settings from the environment and the optional settings file.
	Load() (*domain.Settings, error)
}
