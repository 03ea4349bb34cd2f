// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/ypms/internal/core/domain"

// PackageDatabase persists the installed-package database.
//
//go:generate mockgen -source=database.go -destination=mocks/mock_database.go -package=mocks
type PackageDatabase interface {
	// Load reads the current database. A missing file yields an empty database.
	Load() (*domain.Database, error)

	// Update runs fn against a freshly loaded database and saves the result when fn succeeds.
	// Each call is one load-modify-save cycle, serialized against other calls.
	Update(fn func(db *domain.Database) error) error
}
