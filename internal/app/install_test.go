package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/app"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/engine/enginetest"
	"go.uber.org/mock/gomock"
)

func TestInstall_PlansAndCommits(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(enginetest.StandardGuides())).
		Publish("main", "user/app", "1.0", release(enginetest.StandardGuides(), "user/lib"))
	f := newFixture(t, reg, enginetest.NewDatabase(env))

	res, err := f.app.Install(context.Background(), "user/app", app.InstallOptions{Explicit: true})
	require.NoError(t, err)

	assert.False(t, res.NothingToDo)
	assert.Equal(t, f.settings.EnvDir(env), res.EnvDir)
	assert.DirExists(t, res.EnvDir)
	require.Len(t, res.Plan.Items, 2)

	rec, ok := f.db.Record(env, "main", "user/app")
	require.True(t, ok)
	assert.Equal(t, "1.0", rec.Version)
	assert.True(t, rec.Explicit)
	assert.Equal(t, "2026-01-02T03:04:05Z", rec.InstalledAt)

	lib, ok := f.db.Record(env, "main", "user/lib")
	require.True(t, ok)
	assert.False(t, lib.Explicit)

	assert.Contains(t, f.out.String(), `Plan for environment "default":`)
	assert.Contains(t, f.out.String(), "main:user/lib@1.0 (dependency of user/app)")
	assert.Contains(t, f.sink.Events(), "clear")
	assert.Equal(t, 1, f.sink.Stopped())
}

func TestInstall_AlreadyInstalledPromotes(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(enginetest.StandardGuides()))
	db := enginetest.NewDatabase(env, enginetest.Installed("main", "user/lib", "1.0", false))
	f := newFixture(t, reg, db)

	res, err := f.app.Install(context.Background(), "user/lib", app.InstallOptions{Explicit: true})
	require.NoError(t, err)

	assert.True(t, res.NothingToDo)
	assert.Empty(t, f.out.String())
	assert.Contains(t, f.log.Lines(), "INFO already installed, nothing to do")
	assert.Empty(t, f.sink.Events())

	rec, ok := f.db.Record(env, "main", "user/lib")
	require.True(t, ok)
	assert.True(t, rec.Explicit)
}

func TestInstall_AlreadyInstalledKeepsImplicit(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(enginetest.StandardGuides()))
	db := enginetest.NewDatabase(env, enginetest.Installed("main", "user/lib", "1.0", false))
	f := newFixture(t, reg, db)

	res, err := f.app.Install(context.Background(), "user/lib", app.InstallOptions{})
	require.NoError(t, err)

	assert.True(t, res.NothingToDo)
	assert.Equal(t, 0, f.db.Writes())
}

// coreFixture has user/a@1.0 pinned to user/core@1.0 while user/core 2.0 is the default.
func coreFixture(t *testing.T) *fixture {
	t.Helper()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/core", "1.0", release(enginetest.StandardGuides())).
		Publish("main", "user/core", "2.0", release(enginetest.StandardGuides())).
		Publish("main", "user/a", "1.0", release(enginetest.StandardGuides(), "user/core@1.0"))
	db := enginetest.NewDatabase(env,
		enginetest.Installed("main", "user/core", "1.0", true),
		enginetest.Installed("main", "user/a", "1.0", true),
	)
	return newFixture(t, reg, db)
}

func TestInstall_UpdateGuardBlocks(t *testing.T) {
	t.Parallel()

	f := coreFixture(t)

	_, err := f.app.Install(context.Background(), "user/core", app.InstallOptions{Version: "2.0", AssumeYes: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBlockedByVersionConstraint)

	var blocked *domain.BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, []string{"main:user/a@1.0 requires 1.0, but 2.0 is planned"}, blocked.Messages)

	rec, ok := f.db.Record(env, "main", "user/core")
	require.True(t, ok)
	assert.Equal(t, "1.0", rec.Version)
	assert.Equal(t, 0, f.db.Writes())
	assert.Empty(t, f.sink.Events())
}

func TestInstall_UpdatesPinnedDependencyWithDependent(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(enginetest.StandardGuides())).
		Publish("main", "user/lib", "2.0", release(enginetest.StandardGuides())).
		Publish("main", "user/app", "1.0", release(enginetest.StandardGuides(), "user/lib@1.0")).
		Publish("main", "user/app", "2.0", release(enginetest.StandardGuides(), "user/lib@2.0"))
	db := enginetest.NewDatabase(env,
		enginetest.Installed("main", "user/app", "1.0", true),
		enginetest.Installed("main", "user/lib", "1.0", false),
	)
	f := newFixture(t, reg, db)

	res, err := f.app.Install(context.Background(), "user/app", app.InstallOptions{Version: "2.0", Explicit: true})
	require.NoError(t, err)
	require.Len(t, res.Plan.Items, 2)

	for ref, explicit := range map[string]bool{"user/app": true, "user/lib": false} {
		rec, ok := f.db.Record(env, "main", ref)
		require.True(t, ok, ref)
		assert.Equal(t, "2.0", rec.Version, ref)
		assert.Equal(t, explicit, rec.Explicit, ref)
	}
	assert.NotContains(t, f.log.String(), "WARN")
}

func TestInstall_UpdateGuardForced(t *testing.T) {
	t.Parallel()

	f := coreFixture(t)

	_, err := f.app.Install(context.Background(), "user/core", app.InstallOptions{
		Version:   "2.0",
		Force:     true,
		AssumeYes: true,
	})
	require.NoError(t, err)

	rec, ok := f.db.Record(env, "main", "user/core")
	require.True(t, ok)
	assert.Equal(t, "2.0", rec.Version)
	assert.True(t, rec.Explicit)
	assert.Contains(t, f.out.String(), "main:user/core 1.0 → 2.0")

	lines := f.log.String()
	assert.Contains(t, lines, "WARN forcing past blockers")
}

func TestInstall_UpdateGuardDeclined(t *testing.T) {
	t.Parallel()

	f := coreFixture(t)
	f.prompter.EXPECT().
		Confirm(gomock.Any(), "Proceed with main:user/core anyway?").
		Return(false, nil)

	_, err := f.app.Install(context.Background(), "user/core", app.InstallOptions{Version: "2.0", Force: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfirmationDeclined)
	assert.ErrorIs(t, err, domain.ErrBlockedByVersionConstraint)

	rec, _ := f.db.Record(env, "main", "user/core")
	assert.Equal(t, "1.0", rec.Version)
}

func TestInstall_MissingGuideFailsBeforeExecution(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(map[string]domain.Guide{
			domain.GuideUninstall: enginetest.NoneGuide(),
		})).
		Publish("main", "user/app", "1.0", release(enginetest.StandardGuides(), "user/lib"))
	f := newFixture(t, reg, enginetest.NewDatabase(env))

	_, err := f.app.Install(context.Background(), "user/app", app.InstallOptions{Explicit: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGuideNotDefined)
	assert.Equal(t, 0, f.db.Writes())
	assert.Empty(t, f.sink.Events())
}

func TestInstall_PartialFailureKeepsEarlierItems(t *testing.T) {
	t.Parallel()

	broken := map[string]domain.Guide{
		domain.GuideInstall: {Steps: []domain.Step{{Type: "python"}}},
	}
	reg := enginetest.NewRegistry("main").
		Publish("main", "user/lib", "1.0", release(broken)).
		Publish("main", "user/app", "1.0", release(enginetest.StandardGuides(), "user/lib"))
	f := newFixture(t, reg, enginetest.NewDatabase(env))

	_, err := f.app.Install(context.Background(), "user/app", app.InstallOptions{Explicit: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGuideStepFailure)
	assert.ErrorIs(t, err, domain.ErrUnsupportedStep)

	_, ok := f.db.Record(env, "main", "user/app")
	assert.True(t, ok)
	_, ok = f.db.Record(env, "main", "user/lib")
	assert.False(t, ok)
	assert.Equal(t, 1, f.sink.Stopped())
}

func TestInstall_UnknownSource(t *testing.T) {
	t.Parallel()

	f := newFixture(t, enginetest.NewRegistry("main"), enginetest.NewDatabase(env))

	_, err := f.app.Install(context.Background(), "user/app", app.InstallOptions{Source: "nope"})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}
