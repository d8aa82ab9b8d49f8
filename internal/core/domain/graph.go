package domain

import (
	"maps"
	"slices"
)

// DepGraph records the dependency edges discovered during resolution so the
// planner can order operations without re-fetching metadata.
type DepGraph struct {
	deps map[PackageName][]PackageName
}

// NewDepGraph creates an empty dependency graph.
func NewDepGraph() *DepGraph {
	return &DepGraph{deps: make(map[PackageName][]PackageName)}
}

// Add ensures a node exists for the package.
func (g *DepGraph) Add(name PackageName) {
	if _, ok := g.deps[name]; !ok {
		g.deps[name] = nil
	}
}

// AddDependency records that pkg depends on dep. Both nodes are created if
// missing; duplicate edges are ignored.
func (g *DepGraph) AddDependency(pkg, dep PackageName) {
	g.Add(pkg)
	g.Add(dep)
	if slices.Contains(g.deps[pkg], dep) {
		return
	}
	g.deps[pkg] = append(g.deps[pkg], dep)
}

// Dependencies returns the recorded dependencies of pkg.
func (g *DepGraph) Dependencies(pkg PackageName) []PackageName {
	return g.deps[pkg]
}

// Contains reports whether the graph has a node for the package.
func (g *DepGraph) Contains(name PackageName) bool {
	_, ok := g.deps[name]
	return ok
}

// TopoOrder returns the packages with every dependency preceding its
// dependents. Cycles are tolerated: a back edge does not add an ordering
// requirement, so mutually dependent packages appear in a deterministic
// but otherwise arbitrary relative order. Disconnected nodes are visited
// in sorted name order, which makes the whole ordering deterministic.
func (g *DepGraph) TopoOrder() []PackageName {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	order := make([]PackageName, 0, len(g.deps))
	state := make(map[PackageName]int, len(g.deps))

	var visit func(PackageName)
	visit = func(u PackageName) {
		state[u] = visiting
		deps := slices.Clone(g.deps[u])
		slices.Sort(deps)
		for _, dep := range deps {
			if state[dep] == unvisited {
				visit(dep)
			}
			// state[dep] == visiting closes a cycle; no edge to honor.
		}
		state[u] = visited
		order = append(order, u)
	}

	roots := slices.Collect(maps.Keys(g.deps))
	slices.Sort(roots)
	for _, name := range roots {
		if state[name] == unvisited {
			visit(name)
		}
	}
	return order
}
