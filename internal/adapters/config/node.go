package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/logger"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the resolved settings Graft node.
	SettingsNodeID graft.ID = "adapter.settings"
	// SourcesNodeID is the unique identifier for the source store Graft node.
	SourcesNodeID graft.ID = "adapter.source_store"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, domain.DefaultYpmsDir()), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load()
		},
	})

	graft.Register(graft.Node[ports.SourceStore]{
		ID:        SourcesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SettingsNodeID},
		Run: func(ctx context.Context) (ports.SourceStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewSourceFile(settings.SourcesPath()), nil
		},
	})
}
