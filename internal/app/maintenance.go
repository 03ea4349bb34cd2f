package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/ypms/internal/core/domain"
)

// Outcome is the result of one package in a bulk operation.
type Outcome struct {
	Env     string
	Package domain.PackageKey
	// Result is the guide's last result, or a short status.
	Result string
	Err    error
}

// String renders the outcome as a report line.
func (o Outcome) String() string {
	_, ref := o.Package.Split()
	if o.Err != nil {
		return fmt.Sprintf("[ERROR] %s:%s: %v", o.Env, ref, o.Err)
	}
	return fmt.Sprintf("%s:%s -> %s", o.Env, ref, o.Result)
}

// MaintenanceOptions configuration for the Upgrade and Autoremove methods.
type MaintenanceOptions struct {
	// Env limits the operation to one environment. Empty means every environment.
	Env        string
	Force      bool
	OutputMode string
}

func (a *App) targetEnvs(db *domain.Database, env string) []string {
	if env != "" {
		return []string{env}
	}
	return db.EnvNames()
}

// Upgrade refreshes the registry and runs the update guide of every installed package at its
// default release. Packages already there rerun the guide of their installed release.
// Packages whose release lacks an update guide are skipped.
func (a *App) Upgrade(ctx context.Context, opts MaintenanceOptions) ([]Outcome, error) {
	if err := a.registry.Refresh(ctx); err != nil {
		return nil, err
	}

	db, err := a.db.Load()
	if err != nil {
		return nil, err
	}

	var outcomes []Outcome
	for _, env := range a.targetEnvs(db, opts.Env) {
		for _, rec := range db.Records(env) {
			latest, err := a.defaultRelease(ctx, rec)
			if err != nil {
				outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Err: err})
				continue
			}

			res, err := a.Run(ctx, rec.Package, domain.GuideUpdate, RunOptions{
				Env:        env,
				Version:    latest,
				Source:     rec.Source,
				AssumeYes:  true,
				Force:      opts.Force,
				OutputMode: opts.OutputMode,
			})
			switch {
			case errors.Is(err, domain.ErrGuideNotDefined):
				a.logger.Debug("no update guide", "package", rec.Key().String(), "version", latest)
			case err != nil:
				outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Err: err})
			default:
				outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Result: resultOr(res.LastResult, latest)})
			}
		}
	}
	return outcomes, nil
}

func (a *App) defaultRelease(ctx context.Context, rec domain.InstalledRecord) (string, error) {
	parsed, err := domain.ParsePackageRef(rec.Package)
	if err != nil {
		return "", err
	}
	info, err := a.registry.FetchPackageInfo(ctx, rec.Source, parsed.User, parsed.Name)
	if err != nil {
		return "", err
	}
	return a.registry.ResolveReleaseTag(info, "")
}

// Autoremove uninstalls packages that were only installed as dependencies.
// Without force, packages that still have dependents are kept and reported.
// Passes repeat until one removes nothing, so chains of orphans go in one call.
func (a *App) Autoremove(ctx context.Context, opts MaintenanceOptions) ([]Outcome, error) {
	var outcomes []Outcome
	attempted := make(map[string]bool)
	kept := make(map[string]Outcome)
	var keptOrder []string

	for {
		db, err := a.db.Load()
		if err != nil {
			return nil, err
		}

		removed := false
		for _, env := range a.targetEnvs(db, opts.Env) {
			for _, rec := range db.Records(env) {
				id := env + "\x00" + rec.Key().String()
				if rec.Explicit || attempted[id] {
					continue
				}

				if !opts.Force {
					deps, err := a.guard.CheckUninstall(ctx, env, rec.Source, rec.Package)
					if err != nil {
						attempted[id] = true
						outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Err: err})
						continue
					}
					if len(deps) > 0 {
						if _, seen := kept[id]; !seen {
							keptOrder = append(keptOrder, id)
						}
						kept[id] = Outcome{Env: env, Package: rec.Key(), Result: "kept, " + requiredBy(deps)}
						continue
					}
				}

				attempted[id] = true
				res, err := a.Run(ctx, rec.Package, domain.GuideUninstall, RunOptions{
					Env:        env,
					Version:    rec.Version,
					Source:     rec.Source,
					AssumeYes:  true,
					Force:      opts.Force,
					OutputMode: opts.OutputMode,
				})
				switch {
				case errors.Is(err, domain.ErrGuideNotDefined):
					a.logger.Debug("no uninstall guide", "package", rec.Key().String())
				case err != nil:
					outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Err: err})
				default:
					delete(kept, id)
					removed = true
					outcomes = append(outcomes, Outcome{Env: env, Package: rec.Key(), Result: resultOr(res.LastResult, "removed")})
				}
			}
		}

		if !removed {
			break
		}
	}

	for _, id := range keptOrder {
		if o, ok := kept[id]; ok {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes, nil
}

func requiredBy(deps []domain.DependentInfo) string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, fmt.Sprintf("%s@%s", d.Key(), d.Version))
	}
	return "required by " + strings.Join(names, ", ")
}

func resultOr(result, fallback string) string {
	if result != "" {
		return result
	}
	return fallback
}
