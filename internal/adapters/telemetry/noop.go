package telemetry

import (
	"context"

	"go.blast.dev/blast/internal/core/ports"
)

// NoOpReporter is a silent implementation of ports.Reporter, used when
// output is suppressed or under test.
type NoOpReporter struct{}

// NewNoOpReporter creates a new NoOpReporter.
func NewNoOpReporter() *NoOpReporter {
	return &NoOpReporter{}
}

// EmitPlan does nothing.
func (r *NoOpReporter) EmitPlan(_ context.Context, _ []string) {}

// StartOperation returns a span that discards all writes.
func (r *NoOpReporter) StartOperation(_ context.Context, _ string) ports.OperationSpan {
	return &noOpSpan{}
}

// Close does nothing.
func (r *NoOpReporter) Close() error { return nil }

type noOpSpan struct{}

// Write discards p.
func (s *noOpSpan) Write(p []byte) (int, error) { return len(p), nil }

// Complete does nothing.
func (s *noOpSpan) Complete(_ error) {}
