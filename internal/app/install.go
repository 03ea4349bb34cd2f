package app

import (
	"context"
	"fmt"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/engine/executor"
	"go.trai.ch/ypms/internal/engine/planner"
	"go.trai.ch/ypms/internal/ui/output"
)

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	Env     string
	Version string
	Source  string
	// Explicit marks the target as requested by the user.
	Explicit   bool
	AssumeYes  bool
	Force      bool
	OutputMode string
}

// InstallResult describes a finished install.
type InstallResult struct {
	// EnvDir is the environment's installation directory.
	EnvDir string
	Plan   *domain.OperationPlan
	// NothingToDo reports that the target was already installed at the requested version.
	NothingToDo bool
}

// prepared is a plan item with its guide looked up.
type prepared struct {
	item  domain.OpItem
	guide domain.Guide
}

// Install plans the request, guards every update against the planned state, and then runs the plan in order.
// Items that ran before a failure stay installed.
func (a *App) Install(ctx context.Context, ref string, opts InstallOptions) (*InstallResult, error) {
	env := a.envName(opts.Env)

	plan, err := a.planner.Plan(ctx, planner.PlanRequest{
		PackageRef: ref,
		Env:        env,
		Version:    opts.Version,
		Source:     opts.Source,
		Explicit:   opts.Explicit,
	})
	if err != nil {
		return nil, err
	}

	if plan.Empty() {
		a.logger.Info("already installed, nothing to do")
		if opts.Explicit {
			if err := a.promote(env, ref, opts.Source); err != nil {
				return nil, err
			}
		}
		return &InstallResult{EnvDir: a.settings.EnvDir(env), Plan: plan, NothingToDo: true}, nil
	}

	RenderPlan(output.New(a.out), env, plan)

	for _, item := range plan.Items {
		if item.Kind != domain.OpUpdate {
			continue
		}
		blocked, err := a.guard.PlannedUpdateBlockers(ctx, env, plan, item)
		if err != nil {
			return nil, err
		}
		if err := a.guard.Enforce(ctx, blocked, opts.Force, opts.AssumeYes); err != nil {
			return nil, err
		}
	}

	steps := make([]prepared, 0, len(plan.Items))
	for _, item := range plan.Items {
		_, rel, err := a.release(ctx, item.Source, item.Package, item.Version)
		if err != nil {
			return nil, err
		}
		g, err := guideFor(rel, item.Key(), item.Kind.Guide())
		if err != nil {
			return nil, err
		}
		steps = append(steps, prepared{item: item, guide: g})
	}

	envDir, err := a.ensureEnvDir(env)
	if err != nil {
		return nil, err
	}

	sink := a.newSink(opts.OutputMode)
	defer sink.Stop()

	for i, p := range steps {
		if i > 0 {
			sink.ClearStepsKeepHeader()
		}
		_, err := a.executor.Execute(ctx, executor.Invocation{
			Guide:     p.guide,
			GuideName: p.item.Kind.Guide(),
			Env:       env,
			EnvDir:    envDir,
			Package: executor.PackageContext{
				Source:     p.item.Source,
				PackageRef: p.item.Package,
				Version:    p.item.Version,
				Explicit:   p.item.Explicit,
			},
			Commit: executor.CommitInstall,
			Force:  opts.Force,
			Sink:   sink,
		})
		if err != nil {
			return nil, err
		}
		a.logger.Debug("plan item done", "index", i+1, "kind", string(p.item.Kind), "package", p.item.Key().String())
	}

	return &InstallResult{EnvDir: envDir, Plan: plan}, nil
}

// promote marks an installed record as explicitly requested.
func (a *App) promote(env, ref, sourceName string) error {
	source, err := a.registry.ResolveSource(sourceName)
	if err != nil {
		return err
	}
	key := domain.KeyFor(source, ref)
	return a.db.Update(func(db *domain.Database) error {
		rec, ok := db.Get(env, key)
		if !ok || rec.Explicit {
			return nil
		}
		rec.Explicit = true
		db.Put(env, rec)
		a.logger.Info(fmt.Sprintf("marked %s as explicitly installed", key))
		return nil
	})
}
