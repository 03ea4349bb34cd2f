package ports

// SourceStore manages the configured source names and their ypms.json URLs.
//
//go:generate mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks
type SourceStore interface {
	// Sources returns the configured sources keyed by name.
	Sources() (map[string]string, error)

	// AddSource registers or replaces a source.
	AddSource(name, url string) error

	// RemoveSource deletes a source. Removing an unknown source fails with ErrSourceNotFound.
	RemoveSource(name string) error
}
