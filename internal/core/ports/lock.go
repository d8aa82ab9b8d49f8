package ports

import "go.blast.dev/blast/internal/core/domain"

// EnvironmentLocker serializes mutation of a single environment.
//
// The policy is fail-fast: Acquire returns domain.ErrEnvironmentBusy
// immediately when another process holds the lock, rather than blocking.
type EnvironmentLocker interface {
	// Acquire takes the exclusive lock for the environment and returns a
	// release function. The release function is safe to call exactly once.
	Acquire(env *domain.Environment) (release func() error, err error)
}
