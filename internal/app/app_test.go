package app_test

import (
	"bytes"
	"testing"
	"time"

	"go.trai.ch/ypms/internal/adapters/telemetry"
	"go.trai.ch/ypms/internal/app"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/core/ports/mocks"
	"go.trai.ch/ypms/internal/engine/depindex"
	"go.trai.ch/ypms/internal/engine/enginetest"
	"go.trai.ch/ypms/internal/engine/executor"
	"go.trai.ch/ypms/internal/engine/guard"
	"go.trai.ch/ypms/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

const env = domain.DefaultEnv

type fixture struct {
	app      *app.App
	db       *enginetest.Database
	reg      *enginetest.Registry
	sink     *enginetest.Sink
	log      *enginetest.Logger
	prompter *mocks.MockPrompter
	sources  *mocks.MockSourceStore
	out      *bytes.Buffer
	settings *domain.Settings
}

func newFixture(t *testing.T, reg *enginetest.Registry, db *enginetest.Database) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := enginetest.NewLogger()
	prompter := mocks.NewMockPrompter(ctrl)
	sources := mocks.NewMockSourceStore(ctrl)

	dir := t.TempDir()
	settings := domain.DefaultSettings(dir)
	settings.EnvsDir = dir + "/envs"

	index := depindex.NewIndex(db, reg, log, 4)
	compat := guard.NewGuard(index, prompter, log)
	exec := executor.NewExecutor(
		db,
		mocks.NewMockDownloader(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		compat,
		telemetry.NewNoOpTracer(),
		log,
	).
		WithPlatform("linux", "amd64").
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })

	sink := enginetest.NewSink()
	out := &bytes.Buffer{}

	a := app.New(settings, db, reg, sources, planner.NewPlanner(db, reg, log), compat, exec, log).
		WithOutput(out).
		WithSinkFactory(func() ports.UISink { return sink })

	return &fixture{
		app:      a,
		db:       db,
		reg:      reg,
		sink:     sink,
		log:      log,
		prompter: prompter,
		sources:  sources,
		out:      out,
		settings: settings,
	}
}

func release(guides map[string]domain.Guide, depends ...string) domain.Release {
	return domain.Release{Guides: guides, Depends: enginetest.Depends(depends...)}
}

// removeGuide removes nothing and reports "removed=0".
func removeGuide() domain.Guide {
	return domain.Guide{Steps: []domain.Step{{
		Type:    domain.StepRemoveFile,
		Content: []byte(`{"paths": ["{YPMS_ENV_DIR}/does-not-exist"]}`),
	}}}
}
