package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.blast.dev/blast/internal/core/domain"
)

func stateOf(pairs map[string]string) domain.State {
	st := make(domain.State, len(pairs))
	for name, v := range pairs {
		st[domain.NormalizeName(name)] = domain.MustParseVersion(v)
	}
	return st
}

func TestState_LinesSorted(t *testing.T) {
	st := stateOf(map[string]string{"zlib": "1.0.0", "abc": "2.1.0", "mid": "0.3.0"})
	assert.Equal(t, []string{"abc==2.1.0", "mid==0.3.0", "zlib==1.0.0"}, st.Lines())
}

func TestState_FingerprintStable(t *testing.T) {
	a := stateOf(map[string]string{"foo": "1.0.0", "bar": "2.0.0"})
	b := stateOf(map[string]string{"bar": "2.0.0", "foo": "1.0.0"})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b["foo"] = domain.MustParseVersion("1.0.1")
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestState_Equal(t *testing.T) {
	a := stateOf(map[string]string{"foo": "1.0.0"})
	assert.True(t, a.Equal(stateOf(map[string]string{"foo": "1.0"})))
	assert.False(t, a.Equal(stateOf(map[string]string{"foo": "1.1.0"})))
	assert.False(t, a.Equal(domain.State{}))
}

func TestParseStateLines_RoundTrip(t *testing.T) {
	st := stateOf(map[string]string{"foo": "1.0.0", "bar": "0.2.0"})
	parsed, err := domain.ParseStateLines(st.Lines())
	require.NoError(t, err)
	assert.True(t, st.Equal(parsed))
}

func TestParseStateLines_SkipsCommentsAndBlanks(t *testing.T) {
	parsed, err := domain.ParseStateLines([]string{"# managed by blast", "", "foo==1.0.0"})
	require.NoError(t, err)
	assert.Len(t, parsed, 1)
}

func TestParseStateLines_Corrupt(t *testing.T) {
	_, err := domain.ParseStateLines([]string{"foo=1.0.0"})
	assert.ErrorIs(t, err, domain.ErrStateCorrupt)
}
