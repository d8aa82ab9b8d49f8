// Package planner turns a resolved target state into an ordered install plan.
package planner

import (
	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
)

// Planner diffs a target state against the current state and orders the
// resulting operations along the dependency graph.
type Planner struct {
	logger ports.Logger
}

// New creates a Planner.
func New(logger ports.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan computes the operations taking current to target.
//
// Installs and upgrades come first, dependencies before dependents, so a
// package's install hooks can assume its dependencies are importable.
// Removals follow, dependents before their dependencies, so nothing is ever
// removed while a still-present package depends on it. Planning an
// environment already at target yields an empty plan.
func (p *Planner) Plan(target, current domain.State, graph *domain.DepGraph) *domain.Plan {
	plan := &domain.Plan{}

	// graph.TopoOrder lists dependencies first and covers every package in
	// target; packages only in current (pure removals) are appended in
	// name order so the reverse pass stays deterministic.
	order := graph.TopoOrder()
	seen := make(map[domain.PackageName]bool, len(order))
	for _, name := range order {
		seen[name] = true
	}
	for _, name := range current.Names() {
		if !seen[name] {
			order = append(order, name)
		}
	}

	for _, name := range order {
		targetVersion, inTarget := target[name]
		if !inTarget {
			continue
		}
		currentVersion, installed := current[name]
		switch {
		case !installed:
			plan.Ops = append(plan.Ops, domain.Operation{
				Kind:    domain.OpInstall,
				Name:    name,
				Version: targetVersion,
			})
		case !currentVersion.Equal(targetVersion):
			plan.Ops = append(plan.Ops, domain.Operation{
				Kind:    domain.OpUpgrade,
				Name:    name,
				Version: targetVersion,
				From:    currentVersion,
			})
		}
	}

	// Reverse topological for removals: dependents go before dependencies.
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		currentVersion, installed := current[name]
		if !installed {
			continue
		}
		if _, inTarget := target[name]; inTarget {
			continue
		}
		plan.Ops = append(plan.Ops, domain.Operation{
			Kind:    domain.OpRemove,
			Name:    name,
			Version: currentVersion,
		})
	}

	return plan
}
