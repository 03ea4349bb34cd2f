// Package depindex derives, on demand, which installed packages depend on a given package.
package depindex

import (
	"context"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Index finds dependents by re-reading release metadata of every installed record.
// Nothing is cached between calls.
type Index struct {
	db       ports.PackageDatabase
	registry ports.Registry
	logger   ports.Logger
	limit    int
}

// NewIndex creates an Index that runs at most limit metadata fetches at once.
func NewIndex(db ports.PackageDatabase, registry ports.Registry, logger ports.Logger, limit int) *Index {
	if limit < 1 {
		limit = domain.DefaultDependencyFetchLimit
	}
	return &Index{db: db, registry: registry, logger: logger, limit: limit}
}

// FindDependents returns every installed package in env whose release depends on source:ref.
// Results follow the insertion order of the environment's records. Repeated edges are kept.
func (x *Index) FindDependents(ctx context.Context, env, source, ref string) ([]domain.DependentInfo, error) {
	return x.FindPlannedDependents(ctx, env, source, ref, nil)
}

// FindPlannedDependents is FindDependents with installed records read at the versions in planned.
// Records missing from planned are read at their installed version.
func (x *Index) FindPlannedDependents(
	ctx context.Context,
	env, source, ref string,
	planned map[domain.PackageKey]string,
) ([]domain.DependentInfo, error) {
	db, err := x.db.Load()
	if err != nil {
		return nil, err
	}
	records := db.Records(env)
	if len(records) == 0 {
		return nil, nil
	}

	perRecord := make([][]domain.DependentInfo, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.limit)

	for i, rec := range records {
		if v, ok := planned[rec.Key()]; ok {
			rec.Version = v
		}
		g.Go(func() error {
			found, err := x.scan(gctx, rec, source, ref)
			if err != nil {
				return err
			}
			perRecord[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.DependentInfo
	for _, found := range perRecord {
		out = append(out, found...)
	}
	return out, nil
}

func (x *Index) scan(ctx context.Context, rec domain.InstalledRecord, source, ref string) ([]domain.DependentInfo, error) {
	pkgRef, err := domain.ParsePackageRef(rec.Package)
	if err != nil {
		return nil, zerr.With(err, "record", rec.Key().String())
	}

	info, err := x.registry.FetchPackageInfo(ctx, rec.Source, pkgRef.User, pkgRef.Name)
	if err != nil {
		return nil, zerr.With(err, "dependent", rec.Key().String())
	}
	rel, err := x.registry.FetchReleaseInfo(ctx, info, rec.Version)
	if err != nil {
		return nil, zerr.With(err, "dependent", rec.Key().String())
	}

	var found []domain.DependentInfo
	for _, dep := range rel.Depends {
		if dep.SourceOr(rec.Source) != source || dep.Package != ref {
			continue
		}
		found = append(found, domain.DependentInfo{
			Source:          rec.Source,
			Package:         rec.Package,
			Version:         rec.Version,
			RequiredVersion: x.requiredVersion(ctx, source, ref, dep.Version),
		})
	}
	return found, nil
}

// requiredVersion resolves a constraint to a concrete release. Wildcards and
// unresolvable constraints yield an empty requirement.
func (x *Index) requiredVersion(ctx context.Context, source, ref, constraint string) string {
	if domain.IsWildcardVersion(constraint) {
		return ""
	}

	pkgRef, err := domain.ParsePackageRef(ref)
	if err != nil {
		return ""
	}
	info, err := x.registry.FetchPackageInfo(ctx, source, pkgRef.User, pkgRef.Name)
	if err != nil {
		x.logger.Debug("dependency constraint left unresolved", "package", ref, "constraint", constraint, "error", err.Error())
		return ""
	}
	resolved, err := x.registry.ResolveReleaseTag(info, constraint)
	if err != nil {
		x.logger.Debug("dependency constraint left unresolved", "package", ref, "constraint", constraint, "error", err.Error())
		return ""
	}
	if domain.IsWildcardVersion(resolved) {
		return ""
	}
	return resolved
}
