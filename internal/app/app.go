// Package app implements the application layer for ypms.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/ypms/internal/adapters/detector"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/engine/executor"
	"go.trai.ch/ypms/internal/engine/guard"
	"go.trai.ch/ypms/internal/engine/planner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settings    *domain.Settings
	db          ports.PackageDatabase
	registry    ports.Registry
	sources     ports.SourceStore
	planner     *planner.Planner
	guard       *guard.Guard
	executor    *executor.Executor
	logger      ports.Logger
	out         io.Writer
	sinkFactory ports.SinkFactory
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	db ports.PackageDatabase,
	registry ports.Registry,
	sources ports.SourceStore,
	plan *planner.Planner,
	compat *guard.Guard,
	exec *executor.Executor,
	log ports.Logger,
) *App {
	return &App{
		settings: settings,
		db:       db,
		registry: registry,
		sources:  sources,
		planner:  plan,
		guard:    compat,
		executor: exec,
		logger:   log,
		out:      os.Stdout,
	}
}

// WithOutput sets the writer that receives plans and reports.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithSinkFactory overrides output mode detection for progress sinks.
// This is primarily used for testing to capture progress events.
func (a *App) WithSinkFactory(f ports.SinkFactory) *App {
	a.sinkFactory = f
	return a
}

// Settings returns the resolved settings.
func (a *App) Settings() *domain.Settings {
	return a.settings
}

func (a *App) newSink(outputMode string) ports.UISink {
	if a.sinkFactory != nil {
		return a.sinkFactory()
	}
	return detector.SinkFactory(outputMode)()
}

func (a *App) envName(env string) string {
	if env != "" {
		return env
	}
	if a.settings.DefaultEnv != "" {
		return a.settings.DefaultEnv
	}
	return domain.DefaultEnv
}

// ensureEnvDir creates the environment's installation directory.
func (a *App) ensureEnvDir(env string) (string, error) {
	dir := a.settings.EnvDir(env)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", errors.Join(domain.ErrEnvDirCreateFailed, zerr.With(err, "path", dir))
	}
	return dir, nil
}

// release fetches the metadata and release of source:ref at a concrete version.
func (a *App) release(ctx context.Context, source, ref, version string) (*domain.PackageInfo, *domain.Release, error) {
	parsed, err := domain.ParsePackageRef(ref)
	if err != nil {
		return nil, nil, err
	}
	info, err := a.registry.FetchPackageInfo(ctx, source, parsed.User, parsed.Name)
	if err != nil {
		return nil, nil, err
	}
	rel, err := a.registry.FetchReleaseInfo(ctx, info, version)
	if err != nil {
		return nil, nil, err
	}
	return info, rel, nil
}

func guideFor(rel *domain.Release, key domain.PackageKey, name string) (domain.Guide, error) {
	g, ok := rel.Guide(name)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrGuideNotDefined, "release has no such guide"), "guide", name)
		err = zerr.With(err, "package", key.String())
		return domain.Guide{}, zerr.With(err, "release", rel.ID)
	}
	return g, nil
}

type configurableLogger interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging switches console logging to debug records or JSON output.
// Loggers that cannot be configured are left alone.
func (a *App) ConfigureLogging(verbose, json bool) {
	l, ok := a.logger.(configurableLogger)
	if !ok {
		return
	}
	if verbose {
		l.SetVerbose(true)
	}
	if json {
		l.SetJSON(true)
	}
}
