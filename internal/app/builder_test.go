package app_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/app"
	_ "go.trai.ch/ypms/internal/wiring" // Register providers
)

func TestAppWiring(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YPMS_DIR", dir)
	t.Setenv("YPMS_ENVS_DIR", "")

	// Verify that the application graph can be constructed
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.Equal(t, dir, components.App.Settings().Dir)
	require.NoError(t, components.Close())
}
