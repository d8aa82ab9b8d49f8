package flock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/internal/core/ports"
)

// NodeID is the unique identifier for the environment locker Graft node.
const NodeID graft.ID = "adapter.flock"

func init() {
	graft.Register(graft.Node[ports.EnvironmentLocker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.EnvironmentLocker, error) {
			return NewLocker(), nil
		},
	})
}
