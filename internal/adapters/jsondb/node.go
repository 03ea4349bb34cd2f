package jsondb

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/config"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

// NodeID is the unique identifier for the package database Graft node.
const NodeID graft.ID = "adapter.package_database"

func init() {
	graft.Register(graft.Node[ports.PackageDatabase]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.PackageDatabase, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.DatabasePath()), nil
		},
	})
}
