package ports

import (
	"context"
	"io"

	"go.trai.ch/ypms/internal/core/domain"
)

// CommandRunner runs external commands for shell guide steps.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd, streaming its output to out, and returns the exit code.
	// A non-zero exit code is returned with a nil error; errors mean the command could not run.
	Run(ctx context.Context, cmd domain.Command, out io.Writer) (int, error)
}
