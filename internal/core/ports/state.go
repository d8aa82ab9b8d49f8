package ports

import "go.blast.dev/blast/internal/core/domain"

// StateStore reads and writes the durable record of what is installed in an
// environment. Writes use atomic replace semantics: a concurrent reader
// observes either the old record or the new one, never a partial write.
//
//go:generate go run go.uber.org/mock/mockgen -source=state.go -destination=mocks/mock_state.go -package=mocks
type StateStore interface {
	// Read returns the recorded state. A missing state file is an empty
	// state, not an error.
	Read(env *domain.Environment) (domain.State, error)

	// Write atomically replaces the recorded state.
	Write(env *domain.Environment, st domain.State) error
}
