package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.blast.dev/blast/internal/adapters/index"     //nolint:depguard // Wired in engine wiring
	"go.blast.dev/blast/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.blast.dev/blast/internal/adapters/state"     //nolint:depguard // Wired in engine wiring
	"go.blast.dev/blast/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.blast.dev/blast/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			index.NodeID,
			state.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			source, err := graft.Dep[ports.ArtifactSource](ctx)
			if err != nil {
				return nil, err
			}
			states, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(source, states, reporter, log, cfg.Parallelism), nil
		},
	})
}
