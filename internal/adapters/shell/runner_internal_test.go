package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ypms/internal/core/domain"
)

func TestResolveEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sysEnv   []string
		extra    []string
		expected []string
	}{
		{
			name:     "inherits system",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"PATH=/bin", "USER=test"},
		},
		{
			name:     "extra overrides",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			extra:    []string{"PATH=/custom/bin", "OS=linux"},
			expected: []string{"OS=linux", "PATH=/custom/bin", "USER=test"},
		},
		{
			name:     "keeps equals in values",
			extra:    []string{"URL=https://x.example.com/?a=b"},
			expected: []string{"URL=https://x.example.com/?a=b"},
		},
		{
			name:     "drops malformed",
			sysEnv:   []string{"NOEQUALS", "=empty"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.extra))
		})
	}
}

func TestCommandArgv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, commandArgv(domain.Command{Args: []string{"a", "b"}}))
	assert.Nil(t, commandArgv(domain.Command{Shell: true}))
	argv := commandArgv(domain.Command{Shell: true, Line: "echo hi"})
	assert.Equal(t, "echo hi", argv[len(argv)-1])
}
