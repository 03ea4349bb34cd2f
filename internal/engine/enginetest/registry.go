// Package enginetest provides in-memory collaborators for engine and app tests.
package enginetest

import (
	"context"
	"slices"
	"sort"
	"sync"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry is an in-memory ports.Registry.
type Registry struct {
	mu            sync.Mutex
	defaultSource string
	sources       []string
	packages      map[domain.PackageKey]*domain.PackageInfo
	releases      map[string]*domain.Release
	failures      map[string]error
	fetches       map[string]int
	refreshes     int
}

// NewRegistry creates a registry serving the given sources. The first one is the default.
func NewRegistry(sources ...string) *Registry {
	r := &Registry{
		sources:  sources,
		packages: make(map[domain.PackageKey]*domain.PackageInfo),
		releases: make(map[string]*domain.Release),
		failures: make(map[string]error),
		fetches:  make(map[string]int),
	}
	if len(sources) > 0 {
		r.defaultSource = sources[0]
	}
	return r
}

func releaseKey(source, ref, version string) string {
	return string(domain.KeyFor(source, ref)) + "@" + version
}

// Publish adds a release of source:ref. The newest published release comes first in the list.
func (r *Registry) Publish(source, ref, version string, rel domain.Release) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.KeyFor(source, ref)
	info, ok := r.packages[key]
	if !ok {
		parsed, err := domain.ParsePackageRef(ref)
		if err != nil {
			panic(err)
		}
		info = &domain.PackageInfo{
			Source:     source,
			Ref:        parsed,
			Aliases:    map[string]string{},
			ReleaseURL: "mem://" + string(key) + "/{RELEASE_ID}",
		}
		r.packages[key] = info
	}
	if !info.HasRelease(version) {
		info.Releases = append([]string{version}, info.Releases...)
	}
	info.Aliases["latest"] = info.Releases[0]

	rel.ID = version
	r.releases[releaseKey(source, ref, version)] = &rel
	return r
}

// SetDefault sets the default release of source:ref.
func (r *Registry) SetDefault(source, ref, version string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[domain.KeyFor(source, ref)].DefaultRelease = version
	return r
}

// SetAlias maps alias onto version for source:ref.
func (r *Registry) SetAlias(source, ref, alias, version string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[domain.KeyFor(source, ref)].Aliases[alias] = version
	return r
}

// FailRelease makes fetching the given release return err.
func (r *Registry) FailRelease(source, ref, version string, err error) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[releaseKey(source, ref, version)] = err
	return r
}

// ReleaseFetches returns how many times the release was fetched.
func (r *Registry) ReleaseFetches(source, ref, version string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches[releaseKey(source, ref, version)]
}

// Refreshes returns how many times Refresh was called.
func (r *Registry) Refreshes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes
}

// ResolveSource implements ports.Registry.
func (r *Registry) ResolveSource(name string) (string, error) {
	if name == "" {
		if r.defaultSource == "" {
			return "", domain.ErrNoSourcesConfigured
		}
		return r.defaultSource, nil
	}
	if !slices.Contains(r.sources, name) {
		return "", zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "unknown source"), "source", name)
	}
	return name, nil
}

// FetchPackageInfo implements ports.Registry.
func (r *Registry) FetchPackageInfo(_ context.Context, source, user, pkg string) (*domain.PackageInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := user + "/" + pkg
	info, ok := r.packages[domain.KeyFor(source, ref)]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "no such package"), "package", ref)
		return nil, zerr.With(err, "source", source)
	}
	cp := *info
	cp.Releases = slices.Clone(info.Releases)
	cp.Aliases = make(map[string]string, len(info.Aliases))
	for k, v := range info.Aliases {
		cp.Aliases[k] = v
	}
	return &cp, nil
}

// FetchReleaseInfo implements ports.Registry.
func (r *Registry) FetchReleaseInfo(_ context.Context, info *domain.PackageInfo, version string) (*domain.Release, error) {
	version, err := info.ResolveTag(version)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := releaseKey(info.Source, info.Ref.String(), version)
	r.fetches[key]++
	if err := r.failures[key]; err != nil {
		return nil, err
	}
	rel, ok := r.releases[key]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "no such release"), "package", info.Ref.String())
		return nil, zerr.With(err, "version", version)
	}
	cp := *rel
	return &cp, nil
}

// ResolveReleaseTag implements ports.Registry.
func (r *Registry) ResolveReleaseTag(info *domain.PackageInfo, tag string) (string, error) {
	return info.ResolveTag(tag)
}

// FetchIndex implements ports.Registry.
func (r *Registry) FetchIndex(_ context.Context, source string) (*domain.PackageIndex, error) {
	if _, err := r.ResolveSource(source); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := &domain.PackageIndex{Source: source}
	for key := range r.packages {
		if src, ref := key.Split(); src == source {
			idx.Entries = append(idx.Entries, domain.IndexEntry{Package: ref})
		}
	}
	sort.Slice(idx.Entries, func(i, j int) bool { return idx.Entries[i].Package < idx.Entries[j].Package })
	return idx, nil
}

// Refresh implements ports.Registry.
func (r *Registry) Refresh(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
	return nil
}

// Depends parses dependency strings and panics on malformed input.
func Depends(specs ...string) []domain.DependencySpec {
	out := make([]domain.DependencySpec, 0, len(specs))
	for _, s := range specs {
		spec, err := domain.ParseDependency(s)
		if err != nil {
			panic(err)
		}
		out = append(out, spec)
	}
	return out
}

// NoneGuide is a guide with a single step that does nothing.
func NoneGuide() domain.Guide {
	return domain.Guide{Steps: []domain.Step{{Type: domain.StepNone}}}
}

// StandardGuides returns no-op install, update and uninstall guides.
func StandardGuides() map[string]domain.Guide {
	return map[string]domain.Guide{
		domain.GuideInstall:   NoneGuide(),
		domain.GuideUpdate:    NoneGuide(),
		domain.GuideUninstall: NoneGuide(),
	}
}
