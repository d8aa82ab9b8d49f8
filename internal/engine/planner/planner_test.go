package planner_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/engine/planner"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func stateOf(pairs map[string]string) domain.State {
	st := make(domain.State, len(pairs))
	for name, v := range pairs {
		st[domain.PackageName(name)] = domain.MustParseVersion(v)
	}
	return st
}

func opIndex(ops []domain.Operation, name string) int {
	return slices.IndexFunc(ops, func(op domain.Operation) bool {
		return op.Name == domain.PackageName(name)
	})
}

func TestPlan_DependencyBeforeDependent(t *testing.T) {
	// foo 2.0 depends on bar 1.0, installed into an empty environment.
	target := stateOf(map[string]string{"foo": "2.0.0", "bar": "1.0.0"})
	g := domain.NewDepGraph()
	g.AddDependency("foo", "bar")

	plan := planner.New(nopLogger{}).Plan(target, domain.State{}, g)

	require.Len(t, plan.Ops, 2)
	assert.Equal(t, domain.OpInstall, plan.Ops[0].Kind)
	assert.Equal(t, domain.PackageName("bar"), plan.Ops[0].Name)
	assert.Equal(t, domain.PackageName("foo"), plan.Ops[1].Name)
	assert.Equal(t, "2.0.0", plan.Ops[1].Version.String())
}

func TestPlan_Idempotent(t *testing.T) {
	st := stateOf(map[string]string{"foo": "1.0.0", "bar": "2.0.0"})
	g := domain.NewDepGraph()
	g.Add("foo")
	g.Add("bar")

	plan := planner.New(nopLogger{}).Plan(st, st.Clone(), g)
	assert.True(t, plan.Empty(), "planning against an identical state must be a no-op")
}

func TestPlan_Upgrade(t *testing.T) {
	current := stateOf(map[string]string{"foo": "1.0.0"})
	target := stateOf(map[string]string{"foo": "2.0.0"})
	g := domain.NewDepGraph()
	g.Add("foo")

	plan := planner.New(nopLogger{}).Plan(target, current, g)

	require.Len(t, plan.Ops, 1)
	op := plan.Ops[0]
	assert.Equal(t, domain.OpUpgrade, op.Kind)
	assert.Equal(t, "1.0.0", op.From.String())
	assert.Equal(t, "2.0.0", op.Version.String())
}

func TestPlan_RemovalsAfterInstallsReverseTopo(t *testing.T) {
	// app depends on lib; both are removed while tool is installed.
	current := stateOf(map[string]string{"app": "1.0.0", "lib": "1.0.0"})
	target := stateOf(map[string]string{"tool": "1.0.0"})
	g := domain.NewDepGraph()
	g.AddDependency("app", "lib")
	g.Add("tool")

	plan := planner.New(nopLogger{}).Plan(target, current, g)

	require.Len(t, plan.Ops, 3)
	assert.Equal(t, domain.OpInstall, plan.Ops[0].Kind, "installs come before removals")

	removals := plan.Removals()
	require.Len(t, removals, 2)
	assert.True(t, opIndex(removals, "app") < opIndex(removals, "lib"),
		"dependent must be removed before its dependency: %v", removals)
}

func TestPlan_MixedOperations(t *testing.T) {
	current := stateOf(map[string]string{"keep": "1.0.0", "old": "1.0.0", "up": "1.0.0"})
	target := stateOf(map[string]string{"keep": "1.0.0", "up": "2.0.0", "new": "1.0.0"})
	g := domain.NewDepGraph()
	for _, n := range []string{"keep", "up", "new", "old"} {
		g.Add(domain.PackageName(n))
	}

	plan := planner.New(nopLogger{}).Plan(target, current, g)

	kinds := map[domain.PackageName]domain.OpKind{}
	for _, op := range plan.Ops {
		kinds[op.Name] = op.Kind
	}
	assert.Equal(t, domain.OpInstall, kinds["new"])
	assert.Equal(t, domain.OpUpgrade, kinds["up"])
	assert.Equal(t, domain.OpRemove, kinds["old"])
	assert.NotContains(t, kinds, domain.PackageName("keep"))
}

func TestPlan_UpgradeChainOrdered(t *testing.T) {
	current := stateOf(map[string]string{"app": "1.0.0", "lib": "1.0.0"})
	target := stateOf(map[string]string{"app": "2.0.0", "lib": "2.0.0"})
	g := domain.NewDepGraph()
	g.AddDependency("app", "lib")

	plan := planner.New(nopLogger{}).Plan(target, current, g)

	require.Len(t, plan.Ops, 2)
	assert.Equal(t, domain.PackageName("lib"), plan.Ops[0].Name,
		"dependency upgraded before dependent")
}
