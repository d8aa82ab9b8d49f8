package ports

import (
	"context"

	"go.blast.dev/blast/internal/core/domain"
)

// EnvironmentStore materializes and opens isolated interpreter environments.
//
//go:generate go run go.uber.org/mock/mockgen -source=envstore.go -destination=mocks/mock_envstore.go -package=mocks
type EnvironmentStore interface {
	// Materialize creates a fresh environment at path with an interpreter
	// matching pythonVersion. An empty pythonVersion means the default
	// interpreter on PATH.
	Materialize(ctx context.Context, path, pythonVersion string) (*domain.Environment, error)

	// Open returns the environment rooted at path.
	// Returns domain.ErrNotAnEnvironment if the path is not managed by blast.
	Open(path string) (*domain.Environment, error)

	// LocateExecutable returns the absolute path of a tool inside the
	// environment, honoring platform layout differences.
	LocateExecutable(env *domain.Environment, tool string) (string, error)
}
