package app

import (
	"go.blast.dev/blast/internal/adapters/config"
	"go.blast.dev/blast/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Config   *config.Config
	Reporter ports.Reporter
}
