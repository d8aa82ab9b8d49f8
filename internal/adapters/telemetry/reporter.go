// Package telemetry provides the Progrock implementation of install
// progress reporting.
package telemetry

import (
	"context"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.blast.dev/blast/internal/core/ports"
)

// Reporter implements ports.Reporter using the progrock library. Each
// install operation is rendered as one vertex on the tape.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Reporter with a default tape.
func New() *Reporter {
	return NewReporter(progrock.NewTape())
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// EmitPlan records the set of operations about to run as a single summary
// vertex so the user sees the full plan before work starts.
func (r *Reporter) EmitPlan(ctx context.Context, ops []string) {
	if len(ops) == 0 {
		return
	}
	name := "plan: " + strings.Join(ops, ", ")
	v := r.rec.Vertex(digest.FromString(name), name)
	v.Done(nil)
}

// StartOperation begins progress tracking for one operation.
func (r *Reporter) StartOperation(ctx context.Context, name string) ports.OperationSpan {
	v := r.rec.Vertex(digest.FromString(name), name)
	return &operationSpan{vertex: v}
}

// Close flushes the tape.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// operationSpan wraps a *progrock.VertexRecorder.
type operationSpan struct {
	vertex *progrock.VertexRecorder
}

// Write streams p as the operation's log output.
func (s *operationSpan) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// Complete marks the operation finished.
func (s *operationSpan) Complete(err error) {
	s.vertex.Done(err)
}

var _ ports.Reporter = (*Reporter)(nil)
