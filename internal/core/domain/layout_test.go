package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ypms/internal/core/domain"
)

func TestDefaultYpmsDir(t *testing.T) {
	t.Setenv("YPMS_DIR", "/opt/ypms")
	assert.Equal(t, "/opt/ypms", domain.DefaultYpmsDir())
}

func TestSettingsPaths(t *testing.T) {
	t.Setenv("YPMS_ENVS_DIR", "")

	s := domain.DefaultSettings("/state")
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "DatabasePath", got: s.DatabasePath(), expected: filepath.Join("/state", "installed.json")},
		{name: "SourcesPath", got: s.SourcesPath(), expected: filepath.Join("/state", "sources.yaml")},
		{name: "ConfigPath", got: s.ConfigPath(), expected: filepath.Join("/state", "ypms.yaml")},
		{name: "DebugLogPath", got: s.DebugLogPath(), expected: filepath.Join("/state", "logs", "debug.log")},
		{name: "EnvDir", got: s.EnvDir("work"), expected: filepath.Join("/state", "envs", "work")},
		{name: "CacheDir", got: s.CacheDir, expected: filepath.Join("/state", "cache")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}

	assert.Equal(t, domain.DefaultEnv, s.DefaultEnv)
	assert.Equal(t, domain.DefaultHTTPTimeout, s.HTTPTimeout)
}

func TestSettingsEnvsDirOverride(t *testing.T) {
	t.Setenv("YPMS_ENVS_DIR", "/elsewhere")
	s := domain.DefaultSettings("/state")
	assert.Equal(t, "/elsewhere", s.EnvDir(""))
}
