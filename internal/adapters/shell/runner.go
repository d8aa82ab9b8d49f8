// Package shell provides the process execution adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/core/ports"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the named program with args and returns its stdout. Stderr is
// captured and attached to the error on failure.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // caller controls the command

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Info("running " + name + " " + strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", name)
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if tail := strings.TrimSpace(stderr.String()); tail != "" {
			wrapped = zerr.With(wrapped, "stderr", tail)
		}
		return nil, wrapped
	}

	return stdout.Bytes(), nil
}

var _ ports.CommandRunner = (*Runner)(nil)
