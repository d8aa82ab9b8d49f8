package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/engine/resolver"
)

// fakeSource is an in-memory artifact source: package name -> version ->
// declared dependency specs.
type fakeSource struct {
	pkgs map[string]map[string][]string
}

func (f *fakeSource) ListVersions(_ context.Context, name domain.PackageName) ([]domain.Version, error) {
	releases, ok := f.pkgs[name.String()]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	versions := make([]domain.Version, 0, len(releases))
	for raw := range releases {
		versions = append(versions, domain.MustParseVersion(raw))
	}
	return versions, nil
}

func (f *fakeSource) FetchMetadata(_ context.Context, name domain.PackageName, version domain.Version) ([]domain.PackageSpec, error) {
	releases, ok := f.pkgs[name.String()]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	rawDeps, ok := releases[version.String()]
	if !ok {
		return nil, domain.ErrVersionNotFound
	}
	deps := make([]domain.PackageSpec, 0, len(rawDeps))
	for _, raw := range rawDeps {
		spec, err := domain.ParseSpec(raw)
		if err != nil {
			return nil, err
		}
		deps = append(deps, spec)
	}
	return deps, nil
}

func (f *fakeSource) FetchArtifact(_ context.Context, name domain.PackageName, version domain.Version) (domain.Artifact, error) {
	return domain.Artifact{Name: name, Version: version}, nil
}

func specs(t *testing.T, raws ...string) []domain.PackageSpec {
	t.Helper()
	out := make([]domain.PackageSpec, 0, len(raws))
	for _, raw := range raws {
		spec, err := domain.ParseSpec(raw)
		require.NoError(t, err)
		out = append(out, spec)
	}
	return out
}

func newResolver(src *fakeSource) *resolver.Resolver {
	return resolver.New(src, nopLogger{})
}

type nopLogger struct{}

func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

func TestResolve_NewestSatisfyingWithDependency(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {
			"1.0.0": {},
			"1.2.0": {},
			"2.0.0": {"bar==1.0"},
		},
		"bar": {"1.0.0": {}},
	}}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "foo>=1.0"), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", res.Packages["foo"].String())
	assert.Equal(t, "1.0.0", res.Packages["bar"].String())
	assert.Len(t, res.Packages, 2)
	assert.Contains(t, res.Graph.Dependencies("foo"), domain.PackageName("bar"))
}

func TestResolve_ConflictReport(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {"1.0.0": {"bar==1.0"}},
		"bar": {"1.0.0": {}, "2.0.0": {}},
	}}

	_, err := newResolver(src).Resolve(context.Background(), specs(t, "foo==1.0", "bar==2.0"), domain.State{})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrResolutionConflict)

	var report *domain.ConflictReport
	require.ErrorAs(t, err, &report)
	require.Len(t, report.Conflicts, 1)

	conflict := report.Conflicts[0]
	assert.Equal(t, domain.PackageName("bar"), conflict.Name)
	assert.True(t, report.Involves("foo"), "report must name the requiring package")
	assert.True(t, report.Involves("bar"))

	raws := make([]string, 0, len(conflict.Origins))
	for _, o := range conflict.Origins {
		raws = append(raws, o.Constraint.String())
	}
	assert.Contains(t, raws, "==2.0")
	assert.Contains(t, raws, "==1.0")
}

func TestResolve_BaselineSatisfyingVersionKept(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {"1.0.0": {}, "2.0.0": {}},
	}}
	baseline := domain.State{"foo": domain.MustParseVersion("1.0.0")}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "foo>=1.0"), baseline)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.Packages["foo"].String(), "satisfying baseline version requires no change")
}

func TestResolve_BaselineVersionViolatesNewConstraint(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {"1.0.0": {}, "2.0.0": {}},
	}}
	baseline := domain.State{"foo": domain.MustParseVersion("1.0.0")}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "foo>=1.5"), baseline)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", res.Packages["foo"].String())
}

func TestResolve_UnrequestedBaselinePackagesRetained(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo":  {"1.0.0": {}},
		"kept": {"0.5.0": {}},
	}}
	baseline := domain.State{"kept": domain.MustParseVersion("0.5.0")}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "foo"), baseline)
	require.NoError(t, err)
	assert.Equal(t, "0.5.0", res.Packages["kept"].String())
	assert.Equal(t, "1.0.0", res.Packages["foo"].String())
}

func TestResolve_BacktracksToOlderVersion(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"app": {
			"2.0.0": {"lib==2.0"},
			"1.0.0": {"lib==1.0"},
		},
		"lib": {"1.0.0": {}},
	}}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "app"), domain.State{})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.Packages["app"].String())
	assert.Equal(t, "1.0.0", res.Packages["lib"].String())
}

func TestResolve_DependencyCycle(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"a": {"1.0.0": {"b>=1.0"}},
		"b": {"1.0.0": {"c>=1.0"}},
		"c": {"1.0.0": {"a>=1.0"}},
	}}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "a"), domain.State{})
	require.NoError(t, err)
	assert.Len(t, res.Packages, 3, "cycle must resolve with no duplicates")
	for _, name := range []domain.PackageName{"a", "b", "c"} {
		assert.Equal(t, "1.0.0", res.Packages[name].String())
	}
}

func TestResolve_UnsatisfiableTerminates(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {"1.0.0": {}, "2.0.0": {}},
	}}

	_, err := newResolver(src).Resolve(context.Background(), specs(t, "foo>=3.0"), domain.State{})
	require.ErrorIs(t, err, domain.ErrResolutionConflict)
}

func TestResolve_UnknownPackage(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{}}

	_, err := newResolver(src).Resolve(context.Background(), specs(t, "ghost"), domain.State{})
	require.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestResolve_TransitiveConstraintsSatisfied(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"web": {
			"3.0.0": {"core>=2.0,<3.0", "json>=1.0"},
			"2.0.0": {"core>=1.0,<2.0"},
		},
		"core": {"1.5.0": {}, "2.5.0": {"json>=1.2"}},
		"json": {"1.0.0": {}, "1.2.0": {}, "1.4.0": {}},
	}}

	res, err := newResolver(src).Resolve(context.Background(), specs(t, "web"), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", res.Packages["web"].String())
	assert.Equal(t, "2.5.0", res.Packages["core"].String())
	assert.Equal(t, "1.4.0", res.Packages["json"].String())
}

func TestResolve_Cancelled(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"foo": {"1.0.0": {}},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newResolver(src).Resolve(ctx, specs(t, "foo"), domain.State{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestGraphFor(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{
		"app": {"1.0.0": {"lib>=1.0"}},
		"lib": {"1.0.0": {}},
	}}
	st := domain.State{
		"app": domain.MustParseVersion("1.0.0"),
		"lib": domain.MustParseVersion("1.0.0"),
	}

	g, err := newResolver(src).GraphFor(context.Background(), st)
	require.NoError(t, err)
	assert.Contains(t, g.Dependencies("app"), domain.PackageName("lib"))
}

func TestGraphFor_MissingMetadataTolerated(t *testing.T) {
	src := &fakeSource{pkgs: map[string]map[string][]string{}}
	st := domain.State{"orphan": domain.MustParseVersion("1.0.0")}

	g, err := newResolver(src).GraphFor(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, g.Contains("orphan"))
}
