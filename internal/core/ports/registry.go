package ports

import (
	"context"

	"go.trai.ch/ypms/internal/core/domain"
)

// Registry resolves package and release metadata from configured sources.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// ResolveSource returns the source to use, falling back to the default source when name is empty.
	ResolveSource(name string) (string, error)

	// FetchPackageInfo fetches the metadata of user/pkg from source.
	FetchPackageInfo(ctx context.Context, source, user, pkg string) (*domain.PackageInfo, error)

	// FetchReleaseInfo fetches the release metadata for version, resolving aliases first.
	FetchReleaseInfo(ctx context.Context, info *domain.PackageInfo, version string) (*domain.Release, error)

	// ResolveReleaseTag maps a tag or alias onto a concrete release id.
	ResolveReleaseTag(info *domain.PackageInfo, tag string) (string, error)

	// FetchIndex fetches the package index of source.
	FetchIndex(ctx context.Context, source string) (*domain.PackageIndex, error)

	// Refresh drops cached responses and re-fetches every source config and index.
	Refresh(ctx context.Context) error
}
