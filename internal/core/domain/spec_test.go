package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.blast.dev/blast/internal/core/domain"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		raw     string
		name    domain.PackageName
		accepts string
		rejects string
	}{
		{"requests", "requests", "2.31.0", ""},
		{"requests==2.31.0", "requests", "2.31.0", "2.30.0"},
		{"urllib3>=1.21.1,<3", "urllib3", "2.1.0", "3.0.0"},
		{"Flask~=3.0", "flask", "3.1.0", "4.0.0"},
		{"Typing_Extensions", "typing-extensions", "4.9.0", ""},
		{"numpy!=1.24.0", "numpy", "1.24.1", "1.24.0"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			spec, err := domain.ParseSpec(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.name, spec.Name)
			if tt.accepts != "" {
				assert.True(t, spec.Constraint.Check(domain.MustParseVersion(tt.accepts)),
					"must accept %s", tt.accepts)
			}
			if tt.rejects != "" {
				assert.False(t, spec.Constraint.Check(domain.MustParseVersion(tt.rejects)),
					"must reject %s", tt.rejects)
			}
		})
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "==1.0", ">=2.0"} {
		t.Run("invalid_"+raw, func(t *testing.T) {
			_, err := domain.ParseSpec(raw)
			require.ErrorIs(t, err, domain.ErrInvalidSpec)
		})
	}
}

func TestPackageSpec_String(t *testing.T) {
	spec, err := domain.ParseSpec("requests>=2.30,<3")
	require.NoError(t, err)
	assert.Equal(t, "requests>=2.30,<3", spec.String())

	bare, err := domain.ParseSpec("requests")
	require.NoError(t, err)
	assert.Equal(t, "requests", bare.String())
}
