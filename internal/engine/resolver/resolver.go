// Package resolver implements version resolution as a backtracking
// constraint search over package versions.
package resolver

import (
	"context"
	"errors"
	"slices"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolution is the output of a successful resolve: one version per package,
// plus the dependency edges discovered along the way so the planner can
// order operations without re-fetching metadata.
type Resolution struct {
	Packages domain.State
	Graph    *domain.DepGraph
}

// Resolver computes a consistent version assignment for a set of requested
// packages against an environment baseline.
type Resolver struct {
	source ports.ArtifactSource
	logger ports.Logger
}

// New creates a Resolver backed by the given artifact source.
func New(source ports.ArtifactSource, logger ports.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

// Resolve finds a version for every package reachable from the requested
// specs plus the baseline, satisfying all direct and transitive constraints.
//
// Candidates are tried newest-first, except that a baseline version which
// still satisfies the accumulated constraints is preferred, so packages that
// need no change keep their installed version. On an unsatisfiable input the
// returned error is a *domain.ConflictReport carrying the minimal set of
// constraints that could not be jointly satisfied.
func (r *Resolver) Resolve(
	ctx context.Context,
	requested []domain.PackageSpec,
	baseline domain.State,
) (*Resolution, error) {
	s := &search{
		ctx:         ctx,
		source:      r.source,
		baseline:    baseline,
		constraints: make(map[domain.PackageName][]domain.ConstraintOrigin),
		assigned:    make(domain.State),
		requiredBy:  make(map[domain.PackageName]domain.PackageName),
		candidates:  make(map[domain.PackageName][]domain.Version),
		metadata:    make(map[metaKey][]domain.PackageSpec),
	}

	for _, spec := range requested {
		s.addConstraint(spec.Name, domain.ConstraintOrigin{Constraint: spec.Constraint})
	}
	for name := range baseline {
		// Baseline packages participate even when unrequested so the final
		// assignment covers the whole environment.
		if _, ok := s.constraints[name]; !ok {
			s.addConstraint(name, domain.ConstraintOrigin{Constraint: domain.AnyVersion()})
		}
	}

	if err := s.run(); err != nil {
		return nil, err
	}

	return &Resolution{
		Packages: s.assigned.Clone(),
		Graph:    s.buildGraph(),
	}, nil
}

// GraphFor rebuilds the dependency graph between the packages already
// installed in a state, used to order removals when no fresh resolution is
// at hand.
func (r *Resolver) GraphFor(ctx context.Context, st domain.State) (*domain.DepGraph, error) {
	g := domain.NewDepGraph()
	for name, version := range st {
		g.Add(name)
		deps, err := r.source.FetchMetadata(ctx, name, version)
		if err != nil {
			// Metadata for an installed package may be gone from the index;
			// fall back to an unordered node rather than failing removal.
			if errors.Is(err, domain.ErrArtifactNotFound) || errors.Is(err, domain.ErrVersionNotFound) {
				continue
			}
			return nil, err
		}
		for _, dep := range deps {
			if _, installed := st[dep.Name]; installed {
				g.AddDependency(name, dep.Name)
			}
		}
	}
	return g, nil
}

type metaKey struct {
	name    domain.PackageName
	version string
}

type search struct {
	ctx    context.Context
	source ports.ArtifactSource

	baseline    domain.State
	constraints map[domain.PackageName][]domain.ConstraintOrigin
	assigned    domain.State
	requiredBy  map[domain.PackageName]domain.PackageName

	candidates map[domain.PackageName][]domain.Version
	metadata   map[metaKey][]domain.PackageSpec

	// failure is the deepest dead end seen, reported when the whole search
	// space is exhausted.
	failure *domain.Conflict
}

func (s *search) addConstraint(name domain.PackageName, o domain.ConstraintOrigin) {
	s.constraints[name] = append(s.constraints[name], o)
	if o.RequiredBy != "" {
		if _, ok := s.requiredBy[name]; !ok {
			s.requiredBy[name] = o.RequiredBy
		}
	}
}

// run performs one step of the backtracking search: pick the most
// constrained undetermined package, try its candidates newest-first, and
// recurse. A *domain.ConflictReport error is a backtrackable dead end; any
// other error aborts the search.
func (s *search) run() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	name, found, err := s.pickMostConstrained()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	cands, err := s.satisfying(name)
	if err != nil {
		return err
	}
	if len(cands) == 0 {
		return s.conflict(name)
	}

	for _, version := range cands {
		merged, mergeErr := s.assign(name, version)
		if mergeErr != nil {
			if isConflict(mergeErr) {
				continue
			}
			return mergeErr
		}

		runErr := s.run()
		if runErr == nil {
			return nil
		}
		s.unassign(name, merged)
		if !isConflict(runErr) {
			return runErr
		}
	}

	return s.conflict(name)
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrResolutionConflict)
}

// pickMostConstrained returns the undetermined package with the fewest
// remaining candidates, so the search fails fast. Ties break on name for
// determinism.
func (s *search) pickMostConstrained() (domain.PackageName, bool, error) {
	frontier := make([]domain.PackageName, 0, len(s.constraints))
	for name := range s.constraints {
		if _, done := s.assigned[name]; !done {
			frontier = append(frontier, name)
		}
	}
	if len(frontier) == 0 {
		return "", false, nil
	}
	slices.Sort(frontier)

	best := frontier[0]
	bestCount := -1
	for _, name := range frontier {
		cands, err := s.satisfying(name)
		if err != nil {
			return "", false, err
		}
		if bestCount == -1 || len(cands) < bestCount {
			best = name
			bestCount = len(cands)
		}
	}
	return best, true, nil
}

// satisfying returns the candidate versions of a package that meet all its
// accumulated constraints, newest first, with a still-satisfying baseline
// version moved to the front.
func (s *search) satisfying(name domain.PackageName) ([]domain.Version, error) {
	all, err := s.listVersions(name)
	if err != nil {
		return nil, err
	}

	keep := make([]domain.Version, 0, len(all))
candidates:
	for _, v := range all {
		for _, o := range s.constraints[name] {
			if !o.Constraint.Check(v) {
				continue candidates
			}
		}
		keep = append(keep, v)
	}

	if base, ok := s.baseline[name]; ok {
		if idx := slices.IndexFunc(keep, base.Equal); idx > 0 {
			keep = append([]domain.Version{base}, slices.Delete(slices.Clone(keep), idx, idx+1)...)
		}
	}
	return keep, nil
}

func (s *search) listVersions(name domain.PackageName) ([]domain.Version, error) {
	if cached, ok := s.candidates[name]; ok {
		return cached, nil
	}
	versions, err := s.source.ListVersions(s.ctx, name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list versions"), "package", name.String())
	}
	versions = slices.Clone(versions)
	slices.SortFunc(versions, func(a, b domain.Version) int {
		return b.Compare(a) // descending, newest first
	})
	s.candidates[name] = versions
	return versions, nil
}

func (s *search) dependencies(name domain.PackageName, version domain.Version) ([]domain.PackageSpec, error) {
	key := metaKey{name: name, version: version.String()}
	if deps, ok := s.metadata[key]; ok {
		return deps, nil
	}
	deps, err := s.source.FetchMetadata(s.ctx, name, version)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to fetch metadata"),
			"package", name.String()), "version", version.String())
	}
	s.metadata[key] = deps
	return deps, nil
}

// assign tentatively selects version for name and merges the declared
// dependency constraints into the frontier. A dependency that is already
// assigned on the current path is only validated, never re-decided, which
// closes dependency cycles instead of looping. The returned merge list is
// what unassign needs to undo the step.
func (s *search) assign(name domain.PackageName, version domain.Version) ([]domain.PackageName, error) {
	deps, err := s.dependencies(name, version)
	if err != nil {
		return nil, err
	}

	s.assigned[name] = version
	var merged []domain.PackageName
	for _, dep := range deps {
		if chosen, done := s.assigned[dep.Name]; done {
			if !dep.Constraint.Check(chosen) {
				s.recordFailure(dep.Name, domain.ConstraintOrigin{
					Constraint: dep.Constraint,
					RequiredBy: name,
				})
				s.unassign(name, merged)
				return nil, &domain.ConflictReport{Conflicts: []domain.Conflict{*s.failure}}
			}
			// Consistent with the in-progress assignment: the cycle closes
			// without a new decision point.
			continue
		}
		s.addConstraint(dep.Name, domain.ConstraintOrigin{Constraint: dep.Constraint, RequiredBy: name})
		merged = append(merged, dep.Name)
	}
	return merged, nil
}

func (s *search) unassign(name domain.PackageName, merged []domain.PackageName) {
	delete(s.assigned, name)
	for _, dep := range merged {
		origins := s.constraints[dep]
		s.constraints[dep] = origins[:len(origins)-1]
		if len(s.constraints[dep]) == 0 {
			delete(s.constraints, dep)
		}
	}
}

// conflict records a dead end for name and returns the report for the
// deepest conflict seen so far.
func (s *search) conflict(name domain.PackageName) error {
	if s.failure == nil {
		s.failure = &domain.Conflict{
			Name:    name,
			Origins: slices.Clone(s.constraints[name]),
			Chain:   s.chainFor(name),
		}
	}
	return &domain.ConflictReport{Conflicts: []domain.Conflict{*s.failure}}
}

func (s *search) recordFailure(name domain.PackageName, extra domain.ConstraintOrigin) {
	if s.failure != nil {
		return
	}
	origins := slices.Clone(s.constraints[name])
	origins = append(origins, extra)
	s.failure = &domain.Conflict{
		Name:    name,
		Origins: origins,
		Chain:   s.chainFor(name),
	}
}

// chainFor walks the requiredBy links from name up to a direct request.
func (s *search) chainFor(name domain.PackageName) []domain.PackageName {
	chain := []domain.PackageName{name}
	seen := map[domain.PackageName]bool{name: true}
	for {
		parent, ok := s.requiredBy[chain[len(chain)-1]]
		if !ok || seen[parent] {
			break
		}
		chain = append(chain, parent)
		seen[parent] = true
	}
	slices.Reverse(chain)
	return chain
}

// buildGraph reconstructs the dependency edges of the final assignment from
// the metadata cache. Edges discovered on abandoned branches are not
// included.
func (s *search) buildGraph() *domain.DepGraph {
	g := domain.NewDepGraph()
	for name, version := range s.assigned {
		g.Add(name)
		deps := s.metadata[metaKey{name: name, version: version.String()}]
		for _, dep := range deps {
			if _, ok := s.assigned[dep.Name]; ok {
				g.AddDependency(name, dep.Name)
			}
		}
	}
	return g
}
