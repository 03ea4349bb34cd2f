package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"sort"

	"github.com/sahilm/fuzzy"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvRecords are the installed records of one environment.
type EnvRecords struct {
	Env     string                   `json:"env"`
	Records []domain.InstalledRecord `json:"records"`
}

// ListInstalled returns the installed records of env, or of every environment when env is empty.
func (a *App) ListInstalled(env string) ([]EnvRecords, error) {
	db, err := a.db.Load()
	if err != nil {
		return nil, err
	}
	envs := a.targetEnvs(db, env)
	out := make([]EnvRecords, 0, len(envs))
	for _, name := range envs {
		out = append(out, EnvRecords{Env: name, Records: db.Records(name)})
	}
	return out, nil
}

// EnvInfo names an environment and its installation directory.
type EnvInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// Packages counts the environment's installed records.
	Packages int `json:"packages"`
}

// Envs lists environment directories merged with the environments the database knows.
func (a *App) Envs() ([]EnvInfo, error) {
	db, err := a.db.Load()
	if err != nil {
		return nil, err
	}

	names := db.EnvNames()
	entries, err := os.ReadDir(a.settings.EnvsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, "failed to list environments"), "path", a.settings.EnvsDir)
	}
	for _, e := range entries {
		if e.IsDir() && !slices.Contains(names, e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]EnvInfo, 0, len(names))
	for _, name := range names {
		out = append(out, EnvInfo{
			Name:     name,
			Path:     a.settings.EnvDir(name),
			Packages: len(db.Records(name)),
		})
	}
	return out, nil
}

// SourceInfo is one configured source.
type SourceInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sources lists the configured sources sorted by name.
func (a *App) Sources() ([]SourceInfo, error) {
	m, err := a.sources.Sources()
	if err != nil {
		return nil, err
	}
	out := make([]SourceInfo, 0, len(m))
	for name, url := range m {
		out = append(out, SourceInfo{Name: name, URL: url})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddSource registers or replaces a source.
func (a *App) AddSource(name, url string) error {
	if err := domain.ValidateSourceName(name); err != nil {
		return err
	}
	return a.sources.AddSource(name, url)
}

// RemoveSource deletes a source.
func (a *App) RemoveSource(name string) error {
	return a.sources.RemoveSource(name)
}

// Refresh clears the registry cache and re-fetches every source.
func (a *App) Refresh(ctx context.Context) error {
	return a.registry.Refresh(ctx)
}

// PackageDetails describes a package's releases.
type PackageDetails struct {
	Source  string `json:"source"`
	Package string `json:"package"`
	Default string `json:"default,omitempty"`
	// Resolved is the release the requested version maps onto.
	Resolved   string                  `json:"resolved"`
	Aliases    map[string]string       `json:"aliases,omitempty"`
	Releases   []string                `json:"releases"`
	ReleaseURL string                  `json:"release_url"`
	Depends    []domain.DependencySpec `json:"depends,omitempty"`
	Guides     []string                `json:"guides"`
}

// Info returns a package's release metadata. The requested version, or the default release,
// is resolved and its release is inspected.
func (a *App) Info(ctx context.Context, ref, sourceName, version string) (*PackageDetails, error) {
	parsed, err := domain.ParsePackageRef(ref)
	if err != nil {
		return nil, err
	}
	source, err := a.registry.ResolveSource(sourceName)
	if err != nil {
		return nil, err
	}
	info, err := a.registry.FetchPackageInfo(ctx, source, parsed.User, parsed.Name)
	if err != nil {
		return nil, err
	}

	details := &PackageDetails{
		Source:   source,
		Package:  parsed.String(),
		Default:  info.DefaultRelease,
		Aliases:  info.Aliases,
		Releases: info.Releases,
	}

	resolved, err := a.registry.ResolveReleaseTag(info, version)
	if err != nil {
		return nil, err
	}
	details.Resolved = resolved
	details.ReleaseURL = info.ReleaseURLFor(resolved)

	rel, err := a.registry.FetchReleaseInfo(ctx, info, resolved)
	if err != nil {
		return nil, err
	}
	details.Depends = rel.Depends
	for name := range rel.Guides {
		details.Guides = append(details.Guides, name)
	}
	sort.Strings(details.Guides)
	return details, nil
}

// SearchHit is one package matching a search.
type SearchHit struct {
	Source      string `json:"source"`
	Package     string `json:"package"`
	Description string `json:"desc,omitempty"`
}

// Search fuzzy-matches query against the package index of a source.
// An empty query lists the whole index.
func (a *App) Search(ctx context.Context, query, sourceName string) ([]SearchHit, error) {
	source, err := a.registry.ResolveSource(sourceName)
	if err != nil {
		return nil, err
	}
	index, err := a.registry.FetchIndex(ctx, source)
	if err != nil {
		return nil, err
	}

	hit := func(e domain.IndexEntry) SearchHit {
		return SearchHit{Source: source, Package: e.Package, Description: e.Description}
	}

	if query == "" {
		out := make([]SearchHit, 0, len(index.Entries))
		for _, e := range index.Entries {
			out = append(out, hit(e))
		}
		return out, nil
	}

	matches := fuzzy.Find(query, index.Refs())
	out := make([]SearchHit, 0, len(matches))
	for _, m := range matches {
		out = append(out, hit(index.Entries[m.Index]))
	}
	return out, nil
}
