package executor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ypms/internal/adapters/jsondb"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/registry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/engine/guard"
)

// NodeID is the unique identifier for the guide executor Graft node.
const NodeID graft.ID = "engine.executor"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			jsondb.NodeID,
			registry.DownloaderNodeID,
			shell.NodeID,
			guard.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			db, err := graft.Dep[ports.PackageDatabase](ctx)
			if err != nil {
				return nil, err
			}

			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			g, err := graft.Dep[*guard.Guard](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewExecutor(db, downloader, runner, g, tracer, log), nil
		},
	})
}
