// Package main is the entry point for the blast environment manager.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.blast.dev/blast/cmd/blast/commands"
	"go.blast.dev/blast/internal/app"
	"go.blast.dev/blast/internal/core/domain"
	_ "go.blast.dev/blast/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.Reporter.Close() //nolint:errcheck // Best effort flush

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		var report *domain.ConflictReport
		if errors.As(err, &report) {
			// Conflicts are expected user-facing outcomes, not faults.
			fmt.Fprintln(os.Stderr, report.Error())
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
