package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/internal/adapters/logger"
	"go.blast.dev/blast/internal/adapters/shell"
	"go.blast.dev/blast/internal/core/ports"
)

// NodeID is the unique identifier for the environment store Graft node.
const NodeID graft.ID = "adapter.venv"

func init() {
	graft.Register(graft.Node[ports.EnvironmentStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentStore, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(runner, log), nil
		},
	})
}
