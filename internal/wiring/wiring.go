// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.blast.dev/blast/internal/adapters/config"
	_ "go.blast.dev/blast/internal/adapters/flock"
	_ "go.blast.dev/blast/internal/adapters/index"
	_ "go.blast.dev/blast/internal/adapters/logger"
	_ "go.blast.dev/blast/internal/adapters/shell"
	_ "go.blast.dev/blast/internal/adapters/state"
	_ "go.blast.dev/blast/internal/adapters/telemetry"
	_ "go.blast.dev/blast/internal/adapters/venv"
	// Register app and engine nodes.
	_ "go.blast.dev/blast/internal/app"
	_ "go.blast.dev/blast/internal/engine/installer"
	_ "go.blast.dev/blast/internal/engine/planner"
	_ "go.blast.dev/blast/internal/engine/resolver"
)
