package ports

import "context"

// CommandRunner executes an external process and returns its stdout.
//
// Process execution is injected rather than reached for globally so
// adapters that shell out (venv creation) stay deterministic under test.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
