package guard

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/prompt" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/engine/depindex"
)

// NodeID is the unique identifier for the compatibility guard Graft node.
const NodeID graft.ID = "engine.guard"

func init() {
	graft.Register(graft.Node[*Guard]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{depindex.NodeID, prompt.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Guard, error) {
			idx, err := graft.Dep[*depindex.Index](ctx)
			if err != nil {
				return nil, err
			}

			prompter, err := graft.Dep[ports.Prompter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewGuard(idx, prompter, log), nil
		},
	})
}
