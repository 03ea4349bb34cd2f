package depindex_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/engine/depindex"
	"go.trai.ch/ypms/internal/engine/enginetest"
)

const env = domain.DefaultEnv

func TestFindDependents_SingleDependent(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/b", "1.0", domain.Release{}).
		Publish("main", "user/a", "1.0", domain.Release{Depends: enginetest.Depends("user/b@1.0")})
	db := enginetest.NewDatabase(env,
		enginetest.Installed("main", "user/a", "1.0", true),
		enginetest.Installed("main", "user/b", "1.0", false),
	)

	idx := depindex.NewIndex(db, reg, enginetest.NewLogger(), 4)
	got, err := idx.FindDependents(context.Background(), env, "main", "user/b")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DependentInfo{
		Source:          "main",
		Package:         "user/a",
		Version:         "1.0",
		RequiredVersion: "1.0",
	}, got[0])
}

func TestFindPlannedDependents_ReadsPlannedRelease(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/b", "1.0", domain.Release{}).
		Publish("main", "user/b", "2.0", domain.Release{}).
		Publish("main", "user/a", "1.0", domain.Release{Depends: enginetest.Depends("user/b@1.0")}).
		Publish("main", "user/a", "2.0", domain.Release{Depends: enginetest.Depends("user/b@2.0")})
	db := enginetest.NewDatabase(env,
		enginetest.Installed("main", "user/a", "1.0", true),
		enginetest.Installed("main", "user/b", "1.0", false),
	)

	idx := depindex.NewIndex(db, reg, enginetest.NewLogger(), 4)
	got, err := idx.FindPlannedDependents(context.Background(), env, "main", "user/b",
		map[domain.PackageKey]string{domain.KeyFor("main", "user/a"): "2.0"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "2.0", got[0].Version)
	assert.Equal(t, "2.0", got[0].RequiredVersion)
	assert.Equal(t, 1, reg.ReleaseFetches("main", "user/a", "2.0"))
	assert.Zero(t, reg.ReleaseFetches("main", "user/a", "1.0"))

	rec, ok := db.Record(env, "main", "user/a")
	require.True(t, ok)
	assert.Equal(t, "1.0", rec.Version)
}

func TestFindDependents_Constraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		depends  string
		expected string
	}{
		{name: "concrete", depends: "user/b@1.0", expected: "1.0"},
		{name: "absent", depends: "user/b", expected: ""},
		{name: "latest", depends: "user/b@latest", expected: ""},
		{name: "star", depends: "user/b@*", expected: ""},
		{name: "alias", depends: "user/b@stable", expected: "1.0"},
		{name: "unresolvable", depends: "user/b@9.9", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := enginetest.NewRegistry("main").
				Publish("main", "user/b", "1.0", domain.Release{}).
				Publish("main", "user/b", "2.0", domain.Release{}).
				SetAlias("main", "user/b", "stable", "1.0").
				Publish("main", "user/a", "1.0", domain.Release{Depends: enginetest.Depends(tt.depends)})
			db := enginetest.NewDatabase(env,
				enginetest.Installed("main", "user/a", "1.0", true),
				enginetest.Installed("main", "user/b", "1.0", false),
			)

			got, err := depindex.NewIndex(db, reg, enginetest.NewLogger(), 2).
				FindDependents(context.Background(), env, "main", "user/b")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected, got[0].RequiredVersion)
		})
	}
}

func TestFindDependents_OrderAndDuplicates(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main", "other").
		Publish("main", "user/lib", "1.0", domain.Release{}).
		Publish("main", "user/z", "1.0", domain.Release{Depends: enginetest.Depends("user/lib")}).
		Publish("main", "user/y", "1.0", domain.Release{Depends: enginetest.Depends("user/lib@1.0", "main:user/lib")}).
		Publish("other", "user/x", "3.1", domain.Release{Depends: enginetest.Depends("main:user/lib@1.0", "user/lib")}).
		Publish("main", "user/w", "1.0", domain.Release{Depends: enginetest.Depends("user/unrelated")})

	db := enginetest.NewDatabase(env,
		enginetest.Installed("main", "user/z", "1.0", true),
		enginetest.Installed("main", "user/lib", "1.0", false),
		enginetest.Installed("main", "user/w", "1.0", true),
		enginetest.Installed("main", "user/y", "1.0", true),
		enginetest.Installed("other", "user/x", "3.1", true),
	)

	// A limit of one serializes fetches; the order must not depend on it.
	for _, limit := range []int{1, 8} {
		got, err := depindex.NewIndex(db, reg, enginetest.NewLogger(), limit).
			FindDependents(context.Background(), env, "main", "user/lib")
		require.NoError(t, err)

		keys := make([]string, 0, len(got))
		for _, d := range got {
			keys = append(keys, d.Key().String()+"="+d.RequiredVersion)
		}
		assert.Equal(t, []string{
			"main:user/z=",
			"main:user/y=1.0",
			"main:user/y=",
			"other:user/x=1.0",
		}, keys, "limit %d", limit)
	}
}

func TestFindDependents_EmptyEnvironment(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main")
	db := enginetest.NewDatabase(env)

	got, err := depindex.NewIndex(db, reg, enginetest.NewLogger(), 0).
		FindDependents(context.Background(), "missing", "main", "user/b")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindDependents_FetchesEveryCall(t *testing.T) {
	t.Parallel()

	reg := enginetest.NewRegistry("main").
		Publish("main", "user/a", "1.0", domain.Release{Depends: enginetest.Depends("user/b")})
	db := enginetest.NewDatabase(env, enginetest.Installed("main", "user/a", "1.0", true))
	idx := depindex.NewIndex(db, reg, enginetest.NewLogger(), 2)

	for range 3 {
		_, err := idx.FindDependents(context.Background(), env, "main", "user/b")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, reg.ReleaseFetches("main", "user/a", "1.0"))
}

func TestFindDependents_RegistryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reg := enginetest.NewRegistry("main").
		Publish("main", "user/a", "1.0", domain.Release{}).
		FailRelease("main", "user/a", "1.0", boom)
	db := enginetest.NewDatabase(env, enginetest.Installed("main", "user/a", "1.0", true))

	_, err := depindex.NewIndex(db, reg, enginetest.NewLogger(), 2).
		FindDependents(context.Background(), env, "main", "user/b")
	require.ErrorIs(t, err, boom)
}
