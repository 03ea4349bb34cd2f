package logger

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			path := filepath.Join(domain.DefaultYpmsDir(), domain.LogsDirName, domain.DebugLogFile)
			return NewWithLogFile(path), nil
		},
	})
}
