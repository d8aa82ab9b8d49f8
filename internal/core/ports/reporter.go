package ports

import (
	"context"
	"io"
)

// Reporter surfaces install progress to the user.
type Reporter interface {
	// EmitPlan signals the set of operations about to run.
	EmitPlan(ctx context.Context, ops []string)

	// StartOperation begins progress tracking for one operation.
	StartOperation(ctx context.Context, name string) OperationSpan

	// Close flushes any buffered output.
	Close() error
}

// OperationSpan tracks a single in-flight operation. Writes become the
// operation's log output.
type OperationSpan interface {
	io.Writer

	// Complete marks the operation finished, successfully when err is nil.
	Complete(err error)
}
