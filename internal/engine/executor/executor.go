// Package executor runs guides step by step and commits their database changes.
package executor

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

// CommitMode is the database change a guide run owns.
type CommitMode int

const (
	// CommitNone leaves the database alone unless a step commits explicitly.
	CommitNone CommitMode = iota
	// CommitInstall writes the package's record.
	CommitInstall
	// CommitUninstall deletes the package's record.
	CommitUninstall
)

// PackageContext identifies the package a guide acts on.
type PackageContext struct {
	Source     string
	PackageRef string
	// Version is the concrete release being run.
	Version string
	// Explicit is written on install commits.
	Explicit bool
}

// Key returns the package key.
func (p PackageContext) Key() domain.PackageKey {
	return domain.KeyFor(p.Source, p.PackageRef)
}

// Invocation is one guide run.
type Invocation struct {
	Guide     domain.Guide
	GuideName string
	Env       string
	EnvDir    string
	Package   PackageContext
	Commit    CommitMode
	// Force lets uninstall-package steps remove a record that still has dependents.
	Force bool
	Sink  ports.UISink
}

// Result is the outcome of a successful run.
type Result struct {
	// LastResult is the result of the last step that produced one.
	LastResult string
	// StepsRun counts steps that matched the platform.
	StepsRun int
	// Committed reports whether the run changed the database.
	Committed bool
}

// UninstallChecker reports what blocks removing a package.
type UninstallChecker interface {
	UninstallBlockers(ctx context.Context, env, source, ref string) (*domain.BlockedError, error)
}

// Executor runs guides sequentially.
type Executor struct {
	db         ports.PackageDatabase
	downloader ports.Downloader
	runner     ports.CommandRunner
	checker    UninstallChecker
	tracer     ports.Tracer
	logger     ports.Logger

	now    func() time.Time
	os     string
	arch   string
	python string
}

// NewExecutor creates a new Executor for the current platform.
func NewExecutor(
	db ports.PackageDatabase,
	downloader ports.Downloader,
	runner ports.CommandRunner,
	checker UninstallChecker,
	tracer ports.Tracer,
	logger ports.Logger,
) *Executor {
	return &Executor{
		db:         db,
		downloader: downloader,
		runner:     runner,
		checker:    checker,
		tracer:     tracer,
		logger:     logger,
		now:        time.Now,
		os:         domain.CurrentOS(),
		arch:       domain.CurrentArch(),
		python:     domain.DefaultPythonInterpreter(),
	}
}

// WithPython sets the interpreter used by python steps.
func (e *Executor) WithPython(interpreter string) *Executor {
	e.python = interpreter
	return e
}

// WithClock replaces the clock used for installed_at timestamps.
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// WithPlatform overrides the normalized OS and architecture that step filters match against.
func (e *Executor) WithPlatform(goos, arch string) *Executor {
	e.os = goos
	e.arch = domain.NormalizeArch(arch)
	return e
}

// run carries the mutable state of one invocation.
type run struct {
	e          *Executor
	inv        Invocation
	sink       ports.UISink
	vars       vars
	lastResult string
	step       int
	installed  bool
	removed    bool
}

// Execute runs every matching step of the guide in order. A failing step stops the run;
// database writes from earlier steps are kept.
func (e *Executor) Execute(ctx context.Context, inv Invocation) (Result, error) {
	sink := inv.Sink
	if sink == nil {
		sink = nopSink{}
	}

	ctx, span := e.tracer.Start(ctx, "guide "+inv.GuideName)
	defer span.End()
	span.SetAttribute("package", inv.Package.Key().String())
	span.SetAttribute("version", inv.Package.Version)
	span.SetAttribute("env", inv.Env)
	span.SetAttribute("steps", len(inv.Guide.Steps))

	r := &run{
		e:    e,
		inv:  inv,
		sink: sink,
		vars: newVars(inv, e.os, e.arch),
	}

	header := fmt.Sprintf("%s %s@%s", inv.GuideName, inv.Package.Key(), inv.Package.Version)
	sink.SetHeader(header, ports.StyleActive)

	if err := r.steps(ctx); err != nil {
		span.RecordError(err)
		sink.SetHeader(header, ports.StyleError)
		return Result{}, err
	}

	if err := r.terminalCommit(ctx); err != nil {
		span.RecordError(err)
		sink.SetHeader(header, ports.StyleError)
		return Result{}, err
	}

	sink.SetHeader(header, ports.StyleSuccess)
	return Result{
		LastResult: r.lastResult,
		StepsRun:   r.step,
		Committed:  r.installed || r.removed,
	}, nil
}

func (r *run) steps(ctx context.Context) error {
	for i, step := range r.inv.Guide.Steps {
		if !step.When.Matches(r.e.os, r.e.arch) {
			r.e.logger.Debug("guide step skipped", "guide", r.inv.GuideName, "index", i, "type", string(step.Type))
			continue
		}
		r.step++

		if err := r.runStep(ctx, i, step); err != nil {
			return &domain.StepError{Guide: r.inv.GuideName, Index: i, Type: step.Type, Err: err}
		}
	}

	if r.step == 0 {
		err := zerr.With(zerr.Wrap(domain.ErrNoStepMatched, "nothing to run"), "guide", r.inv.GuideName)
		return zerr.With(zerr.With(err, "os", r.e.os), "arch", r.e.arch)
	}
	return nil
}

func (r *run) runStep(ctx context.Context, index int, step domain.Step) error {
	ctx, span := r.e.tracer.Start(ctx, "step "+string(step.Type))
	defer span.End()
	span.SetAttribute("index", index)

	label := string(step.Type)
	r.sink.SetStep(r.step, label, ports.StyleActive)

	res, keep, err := r.dispatch(ctx, step)
	if err != nil {
		span.RecordError(err)
		r.sink.SetStep(r.step, fmt.Sprintf("%s: %v", label, err), ports.StyleError)
		return err
	}

	if !keep {
		r.lastResult = res
	}
	r.sink.SetStep(r.step, label, ports.StyleSuccess)
	r.e.logger.Debug("guide step done", "guide", r.inv.GuideName, "index", index, "type", label, "result", res)
	return nil
}

// dispatch runs one step. keep reports that the previous result stays in place.
func (r *run) dispatch(ctx context.Context, step domain.Step) (res string, keep bool, err error) {
	switch step.Type {
	case domain.StepDownloadFile, domain.StepDownloadOnly:
		res, err = r.download(ctx, step.Content)
	case domain.StepShell:
		res, err = r.shell(ctx, step.Content)
	case domain.StepPython:
		res, err = r.python(ctx, step.Content)
	case domain.StepRemoveFile:
		res, err = r.removeFiles(step.Content)
	case domain.StepInstallPackage:
		res, err = r.installPackage(step.Content)
	case domain.StepUninstallPackage:
		res, err = r.uninstallPackage(ctx, step.Content)
	case domain.StepNone:
		return "", true, nil
	default:
		err = zerr.With(zerr.Wrap(domain.ErrUnsupportedStep, "unknown step"), "type", string(step.Type))
	}
	return res, false, err
}

// terminalCommit performs the invocation's commit unless a step already did.
func (r *run) terminalCommit(ctx context.Context) error {
	switch r.inv.Commit {
	case CommitInstall:
		if r.installed {
			return nil
		}
		return r.commitInstall(r.inv.Package)
	case CommitUninstall:
		if r.removed {
			return nil
		}
		return r.commitUninstall(ctx, r.inv.Package)
	default:
		return nil
	}
}

func (r *run) commitInstall(pkg PackageContext) error {
	rec := domain.InstalledRecord{
		Source:      pkg.Source,
		Package:     pkg.PackageRef,
		Version:     pkg.Version,
		Explicit:    pkg.Explicit,
		InstalledAt: r.e.now().UTC().Format(time.RFC3339),
	}
	if err := r.e.db.Update(func(db *domain.Database) error {
		db.Put(r.inv.Env, rec)
		return nil
	}); err != nil {
		return err
	}
	if pkg.Key() == r.inv.Package.Key() {
		r.installed = true
	}
	r.e.logger.Debug("record committed", "env", r.inv.Env, "package", rec.Key().String(), "version", rec.Version)
	return nil
}

func (r *run) commitUninstall(ctx context.Context, pkg PackageContext) error {
	blocked, err := r.e.checker.UninstallBlockers(ctx, r.inv.Env, pkg.Source, pkg.PackageRef)
	if err != nil {
		return err
	}
	if blocked != nil {
		if !r.inv.Force {
			return blocked
		}
		r.sink.SetStep(r.step, "forced: "+blocked.Error(), ports.StyleWarning)
		r.e.logger.Warn(fmt.Sprintf("removing %s despite dependents", pkg.Key()))
	}

	if err := r.e.db.Update(func(db *domain.Database) error {
		db.Delete(r.inv.Env, pkg.Key())
		return nil
	}); err != nil {
		return err
	}
	if pkg.Key() == r.inv.Package.Key() {
		r.removed = true
	}
	r.e.logger.Debug("record removed", "env", r.inv.Env, "package", pkg.Key().String())
	return nil
}
