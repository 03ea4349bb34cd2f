package app

import (
	"context"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/engine/executor"
)

// RunOptions configuration for the Run method.
type RunOptions struct {
	Env string
	// Version defaults to the installed version, or to the registry default for update.
	Version    string
	Source     string
	AssumeYes  bool
	Force      bool
	OutputMode string
}

// RunResult describes a finished guide run.
type RunResult struct {
	EnvDir  string
	Version string
	// LastResult is the result of the guide's last producing step.
	LastResult string
}

// Run executes the named guide of a package's release.
// Update and uninstall guides pass the compatibility guard first.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, ref, guideName string, opts RunOptions) (*RunResult, error) {
	env := a.envName(opts.Env)

	parsed, err := domain.ParsePackageRef(ref)
	if err != nil {
		return nil, err
	}
	ref = parsed.String()

	source, err := a.registry.ResolveSource(opts.Source)
	if err != nil {
		return nil, err
	}
	key := domain.KeyFor(source, ref)

	db, err := a.db.Load()
	if err != nil {
		return nil, err
	}
	rec, installed := db.Get(env, key)

	version := opts.Version
	if version == "" && installed && guideName != domain.GuideUpdate {
		version = rec.Version
	}

	info, err := a.registry.FetchPackageInfo(ctx, source, parsed.User, parsed.Name)
	if err != nil {
		return nil, err
	}
	version, err = a.registry.ResolveReleaseTag(info, version)
	if err != nil {
		return nil, err
	}
	rel, err := a.registry.FetchReleaseInfo(ctx, info, version)
	if err != nil {
		return nil, err
	}
	g, err := guideFor(rel, key, guideName)
	if err != nil {
		return nil, err
	}

	pkg := executor.PackageContext{Source: source, PackageRef: ref, Version: version, Explicit: true}
	commit := executor.CommitNone

	switch guideName {
	case domain.GuideUpdate:
		if installed && rec.Version != version {
			blocked, err := a.guard.UpdateBlockers(ctx, env, source, ref, version)
			if err != nil {
				return nil, err
			}
			if err := a.guard.Enforce(ctx, blocked, opts.Force, opts.AssumeYes); err != nil {
				return nil, err
			}
		}
		if installed {
			commit = executor.CommitInstall
			pkg.Explicit = rec.Explicit
		}
	case domain.GuideUninstall:
		blocked, err := a.guard.UninstallBlockers(ctx, env, source, ref)
		if err != nil {
			return nil, err
		}
		if err := a.guard.Enforce(ctx, blocked, opts.Force, opts.AssumeYes); err != nil {
			return nil, err
		}
		commit = executor.CommitUninstall
	case domain.GuideInstall:
		commit = executor.CommitInstall
		if installed {
			pkg.Explicit = rec.Explicit
		}
	}

	envDir, err := a.ensureEnvDir(env)
	if err != nil {
		return nil, err
	}

	sink := a.newSink(opts.OutputMode)
	defer sink.Stop()

	res, err := a.executor.Execute(ctx, executor.Invocation{
		Guide:     g,
		GuideName: guideName,
		Env:       env,
		EnvDir:    envDir,
		Package:   pkg,
		Commit:    commit,
		Force:     opts.Force,
		Sink:      sink,
	})
	if err != nil {
		return nil, err
	}

	return &RunResult{EnvDir: envDir, Version: version, LastResult: res.LastResult}, nil
}
