package domain_test

import (
	"slices"
	"testing"

	"go.blast.dev/blast/internal/core/domain"
)

func indexOf(order []domain.PackageName, name string) int {
	return slices.Index(order, domain.PackageName(name))
}

func TestDepGraph_TopoOrder_DepsFirst(t *testing.T) {
	g := domain.NewDepGraph()
	// app -> framework -> util, app -> util
	g.AddDependency("app", "framework")
	g.AddDependency("framework", "util")
	g.AddDependency("app", "util")

	order := g.TopoOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 nodes, got %v", order)
	}
	if indexOf(order, "util") > indexOf(order, "framework") {
		t.Errorf("util must precede framework: %v", order)
	}
	if indexOf(order, "framework") > indexOf(order, "app") {
		t.Errorf("framework must precede app: %v", order)
	}
}

func TestDepGraph_TopoOrder_Deterministic(t *testing.T) {
	build := func() *domain.DepGraph {
		g := domain.NewDepGraph()
		g.Add("zeta")
		g.Add("alpha")
		g.AddDependency("mid", "alpha")
		return g
	}
	first := build().TopoOrder()
	for range 10 {
		if got := build().TopoOrder(); !slices.Equal(first, got) {
			t.Fatalf("ordering not deterministic: %v vs %v", first, got)
		}
	}
}

func TestDepGraph_TopoOrder_CycleTolerated(t *testing.T) {
	g := domain.NewDepGraph()
	g.AddDependency("a", "b")
	g.AddDependency("b", "c")
	g.AddDependency("c", "a")

	order := g.TopoOrder()
	if len(order) != 3 {
		t.Fatalf("cycle must not drop or duplicate nodes: %v", order)
	}
	seen := map[domain.PackageName]bool{}
	for _, n := range order {
		if seen[n] {
			t.Fatalf("duplicate node %s in %v", n, order)
		}
		seen[n] = true
	}
}

func TestDepGraph_DuplicateEdgesIgnored(t *testing.T) {
	g := domain.NewDepGraph()
	g.AddDependency("a", "b")
	g.AddDependency("a", "b")
	if deps := g.Dependencies("a"); len(deps) != 1 {
		t.Errorf("expected single edge, got %v", deps)
	}
}
