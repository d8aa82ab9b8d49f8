package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/adapters/flock"     //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/adapters/venv"      //nolint:depguard // Wired in app layer
	"go.blast.dev/blast/internal/core/ports"
	"go.blast.dev/blast/internal/engine/installer"
	"go.blast.dev/blast/internal/engine/planner"
	"go.blast.dev/blast/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			planner.NodeID,
			installer.NodeID,
			venv.NodeID,
			state.NodeID,
			flock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			plan, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}
			inst, err := graft.Dep[*installer.Installer](ctx)
			if err != nil {
				return nil, err
			}
			envs, err := graft.Dep[ports.EnvironmentStore](ctx)
			if err != nil {
				return nil, err
			}
			states, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			locker, err := graft.Dep[ports.EnvironmentLocker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(res, plan, inst, envs, states, locker, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
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
			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:      a,
				Logger:   log,
				Config:   cfg,
				Reporter: reporter,
			}, nil
		},
	})
}
