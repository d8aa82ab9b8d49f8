package index

import (
	"context"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/internal/adapters/config"
	"go.blast.dev/blast/internal/adapters/logger"
	"go.blast.dev/blast/internal/core/ports"
)

// NodeID is the unique identifier for the artifact source Graft node.
const NodeID graft.ID = "adapter.index"

func init() {
	graft.Register(graft.Node[ports.ArtifactSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactSource, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg, log), nil
		},
	})
}
