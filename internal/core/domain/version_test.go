package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.blast.dev/blast/internal/core/domain"
)

func TestParseVersion_Canonical(t *testing.T) {
	v, err := domain.ParseVersion("1.2")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v.String())
}

func TestParseVersion_Invalid(t *testing.T) {
	_, err := domain.ParseVersion("not-a-version")
	require.Error(t, err)
}

func TestVersion_Compare(t *testing.T) {
	v1 := domain.MustParseVersion("1.0.0")
	v2 := domain.MustParseVersion("1.2.0")
	v3 := domain.MustParseVersion("2.0.0")

	assert.Equal(t, -1, v1.Compare(v2))
	assert.Equal(t, 1, v3.Compare(v2))
	assert.Equal(t, 0, v1.Compare(domain.MustParseVersion("1.0")))
	assert.True(t, domain.Version{}.Compare(v1) < 0)
}

func TestParseConstraint_PipOperators(t *testing.T) {
	v12 := domain.MustParseVersion("1.2.0")
	v15 := domain.MustParseVersion("1.5.0")
	v20 := domain.MustParseVersion("2.0.0")

	cases := []struct {
		expr    string
		version domain.Version
		want    bool
	}{
		{"==1.2.0", v12, true},
		{"==1.2.0", v15, false},
		{">=1.0", v20, true},
		{">=1.0,<2.0", v20, false},
		{">=1.0,<2.0", v15, true},
		{"!=1.5.0", v15, false},
		{"!=1.5.0", v12, true},
		{"~=1.2", v15, true},
		{"~=1.2", v20, false},
		{"", v20, true},
	}
	for _, tc := range cases {
		c, err := domain.ParseConstraint(tc.expr)
		require.NoError(t, err, "parse %q", tc.expr)
		assert.Equal(t, tc.want, c.Check(tc.version), "%q check %s", tc.expr, tc.version)
	}
}

func TestConstraint_And(t *testing.T) {
	lo := domain.MustParseConstraint(">=1.0")
	hi := domain.MustParseConstraint("<2.0")
	both := lo.And(hi)

	assert.True(t, both.Check(domain.MustParseVersion("1.5.0")))
	assert.False(t, both.Check(domain.MustParseVersion("2.1.0")))
	assert.False(t, both.Check(domain.MustParseVersion("0.9.0")))
}

func TestConstraint_AndWithAny(t *testing.T) {
	c := domain.AnyVersion().And(domain.MustParseConstraint("==1.0.0"))
	assert.True(t, c.Check(domain.MustParseVersion("1.0.0")))
	assert.False(t, c.Check(domain.MustParseVersion("1.1.0")))
}

func TestParseSpec_Constraints(t *testing.T) {
	s, err := domain.ParseSpec("Foo_Bar>=1.0,<2.0")
	require.NoError(t, err)
	assert.Equal(t, domain.PackageName("foo-bar"), s.Name)
	assert.True(t, s.Constraint.Check(domain.MustParseVersion("1.9.0")))
	assert.False(t, s.Constraint.Check(domain.MustParseVersion("2.0.0")))

	bare, err := domain.ParseSpec("requests")
	require.NoError(t, err)
	assert.Equal(t, domain.PackageName("requests"), bare.Name)
	assert.True(t, bare.Constraint.Check(domain.MustParseVersion("0.0.1")))

	_, err = domain.ParseSpec("==1.0")
	require.Error(t, err)
	_, err = domain.ParseSpec("")
	require.Error(t, err)
}
