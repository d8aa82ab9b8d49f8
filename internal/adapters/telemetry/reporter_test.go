package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.blast.dev/blast/internal/adapters/telemetry"
)

func TestReporter_OperationLifecycle(t *testing.T) {
	reporter := telemetry.New()
	ctx := context.Background()

	reporter.EmitPlan(ctx, []string{"install requests 2.31.0", "install urllib3 2.1.0"})

	span := reporter.StartOperation(ctx, "install requests 2.31.0")
	_, err := span.Write([]byte("fetching\n"))
	require.NoError(t, err)
	span.Complete(nil)

	span = reporter.StartOperation(ctx, "install urllib3 2.1.0")
	span.Complete(assert.AnError)

	require.NoError(t, reporter.Close())
}

func TestReporter_EmptyPlanEmitsNothing(t *testing.T) {
	reporter := telemetry.New()
	reporter.EmitPlan(context.Background(), nil)
	require.NoError(t, reporter.Close())
}

func TestNoOpReporter(t *testing.T) {
	reporter := telemetry.NewNoOpReporter()
	reporter.EmitPlan(context.Background(), []string{"install foo 1.0.0"})

	span := reporter.StartOperation(context.Background(), "install foo 1.0.0")
	n, err := span.Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, len("discarded"), n)
	span.Complete(nil)

	require.NoError(t, reporter.Close())
}
