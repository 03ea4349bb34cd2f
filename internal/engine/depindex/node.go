package depindex

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/jsondb"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

// NodeID is the unique identifier for the dependency index Graft node.
const NodeID graft.ID = "engine.depindex"

func init() {
	graft.Register(graft.Node[*Index]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			jsondb.NodeID,
			registry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Index, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

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

			return NewIndex(db, reg, log, settings.DependencyFetchLimit), nil
		},
	})
}
