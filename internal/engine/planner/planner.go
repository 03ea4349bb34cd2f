// Package planner computes the state changes a package request needs in an environment.
package planner

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

// PlanRequest describes a requested install or update.
type PlanRequest struct {
	PackageRef string
	Env        string
	// Version is a concrete tag, an alias, or empty for the registry default.
	Version string
	// Source overrides the default source when non-empty.
	Source string
	// Explicit is recorded on a newly installed target.
	Explicit bool
}

// Planner turns requests into operation plans. It never writes.
type Planner struct {
	db       ports.PackageDatabase
	registry ports.Registry
	logger   ports.Logger
}

// NewPlanner creates a new Planner.
func NewPlanner(db ports.PackageDatabase, registry ports.Registry, logger ports.Logger) *Planner {
	return &Planner{db: db, registry: registry, logger: logger}
}

// pending is a planned item whose release dependencies still need a look.
type pending struct {
	source string
	label  string
	info   *domain.PackageInfo
	rel    *domain.Release
}

// Plan resolves the request and compares it with the installed record.
// An empty plan means the package is already installed at the resolved version.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*domain.OperationPlan, error) {
	ref, err := domain.ParsePackageRef(req.PackageRef)
	if err != nil {
		return nil, err
	}

	source, err := p.registry.ResolveSource(req.Source)
	if err != nil {
		return nil, err
	}

	info, err := p.registry.FetchPackageInfo(ctx, source, ref.User, ref.Name)
	if err != nil {
		return nil, err
	}

	// Aliases are resolved before any comparison with the installed version.
	version, err := p.registry.ResolveReleaseTag(info, req.Version)
	if err != nil {
		return nil, err
	}

	db, err := p.db.Load()
	if err != nil {
		return nil, err
	}

	plan := &domain.OperationPlan{}
	key := domain.KeyFor(source, ref.String())
	rec, installed := db.Get(req.Env, key)

	switch {
	case installed && rec.Version == version:
		p.logger.Debug("plan: already installed", "package", key.String(), "version", version)
		return plan, nil
	case installed:
		plan.Add(domain.OpItem{
			Kind:      domain.OpUpdate,
			Source:    source,
			Package:   ref.String(),
			Version:   version,
			Installed: rec.Version,
			Explicit:  rec.Explicit,
		})
	default:
		plan.Add(domain.OpItem{
			Kind:     domain.OpTarget,
			Source:   source,
			Package:  ref.String(),
			Version:  version,
			Explicit: req.Explicit,
		})
	}

	rel, err := p.registry.FetchReleaseInfo(ctx, info, version)
	if err != nil {
		return nil, err
	}

	queue := []pending{{source: source, label: ref.String(), info: info, rel: rel}}
	visited := map[domain.PackageKey]bool{key: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		next, err := p.expand(ctx, req.Env, db, plan, visited, cur)
		if err != nil {
			return nil, err
		}
		queue = append(queue, next...)
	}

	p.logger.Debug("plan: computed", "package", key.String(), "items", len(plan.Items))
	return plan, nil
}

// expand adds items for the dependencies of one planned release.
func (p *Planner) expand(
	ctx context.Context,
	env string,
	db *domain.Database,
	plan *domain.OperationPlan,
	visited map[domain.PackageKey]bool,
	cur pending,
) ([]pending, error) {
	var next []pending

	for _, dep := range cur.rel.Depends {
		depSource := dep.SourceOr(cur.source)
		depKey := domain.KeyFor(depSource, dep.Package)
		if visited[depKey] || plan.Contains(depKey) {
			continue
		}
		visited[depKey] = true

		rec, installed := db.Get(env, depKey)
		if installed && domain.IsWildcardVersion(dep.Version) {
			continue
		}

		depRef, err := domain.ParsePackageRef(dep.Package)
		if err != nil {
			return nil, err
		}
		info, err := p.registry.FetchPackageInfo(ctx, depSource, depRef.User, depRef.Name)
		if err != nil {
			return nil, zerr.With(err, "dependency_of", cur.label)
		}
		version, err := p.registry.ResolveReleaseTag(info, dependencyTag(info, dep.Version))
		if err != nil {
			return nil, zerr.With(err, "dependency_of", cur.label)
		}

		if installed {
			if rec.Version == version {
				continue
			}
			idx := plan.Add(domain.OpItem{
				Kind:      domain.OpUpdate,
				Source:    depSource,
				Package:   dep.Package,
				Version:   version,
				Installed: rec.Version,
				Explicit:  rec.Explicit,
			})
			plan.Note(idx, fmt.Sprintf("required by %s:%s@%s", cur.source, cur.label, cur.rel.ID))
		} else {
			plan.Add(domain.OpItem{
				Kind:     domain.OpInstall,
				Source:   depSource,
				Package:  dep.Package,
				Version:  version,
				Footnote: "dependency of " + cur.label,
			})
		}

		rel, err := p.registry.FetchReleaseInfo(ctx, info, version)
		if err != nil {
			return nil, zerr.With(err, "dependency_of", cur.label)
		}
		next = append(next, pending{source: depSource, label: dep.Package, info: info, rel: rel})
	}

	return next, nil
}

// dependencyTag maps a dependency constraint onto the tag to resolve.
// Wildcards select the registry default unless the package defines a latest alias.
func dependencyTag(info *domain.PackageInfo, constraint string) string {
	if !domain.IsWildcardVersion(constraint) {
		return constraint
	}
	if strings.TrimSpace(constraint) == "latest" && info.Aliases["latest"] != "" {
		return "latest"
	}
	return ""
}
