package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/config"
	"go.trai.ch/ypms/internal/adapters/logger"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the registry client Graft node.
	NodeID graft.ID = "adapter.registry"
	// DownloaderNodeID is the unique identifier for the downloader Graft node.
	DownloaderNodeID graft.ID = "adapter.downloader"
)

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, config.SourcesNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			sources, err := graft.Dep[ports.SourceStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(settings, sources, log), nil
		},
	})

	graft.Register(graft.Node[ports.Downloader]{
		ID:        DownloaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewDownloader(settings), nil
		},
	})
}
