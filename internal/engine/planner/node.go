package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/jsondb"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{jsondb.NodeID, registry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			db, err := graft.Dep[ports.PackageDatabase](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPlanner(db, reg, log), nil
		},
	})
}
