package domain

import (
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is an ordered semantic version.
//
// It is a thin wrapper around github.com/Masterminds/semver/v3 so the rest of
// the codebase never handles the library type directly.
type Version struct {
	v *mm.Version
}

// ParseVersion parses a version string into its canonical form.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "raw", raw)
	}
	return Version{v: v}, nil
}

// MustParseVersion parses a version string and panics on failure. Test helper.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical form, e.g. "1.2.0".
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// IsZero reports whether v is the zero Version (no value parsed).
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1 when v is less than, equal to or greater than o.
// The zero Version sorts before every parsed version.
func (v Version) Compare(o Version) int {
	if v.v == nil && o.v == nil {
		return 0
	}
	if v.v == nil {
		return -1
	}
	if o.v == nil {
		return 1
	}
	return v.v.Compare(o.v)
}

// Equal reports whether two versions compare equal.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Constraint is a predicate over Version. Multiple constraints for the same
// package combine by conjunction (And).
type Constraint struct {
	raw string
	c   *mm.Constraints
}

// AnyVersion returns the constraint satisfied by every version.
func AnyVersion() Constraint {
	c, _ := mm.NewConstraint("*")
	return Constraint{raw: "*", c: c}
}

// ParseConstraint parses a pip-style constraint expression such as
// "==1.0", ">=1.0,<2.0", "!=1.4" or "~=1.2". The empty string means
// any version.
func ParseConstraint(raw string) (Constraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "*" {
		return AnyVersion(), nil
	}

	translated := translateOperators(trimmed)
	c, err := mm.NewConstraint(translated)
	if err != nil {
		return Constraint{}, zerr.With(zerr.Wrap(err, ErrInvalidSpec.Error()), "constraint", raw)
	}
	return Constraint{raw: trimmed, c: c}, nil
}

// MustParseConstraint parses a constraint and panics on failure. Test helper.
func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// translateOperators rewrites pip requirement operators into the form the
// semver library understands. "==" becomes "=". The compatible-release
// operator "~=X.Y" pins the major version (semver "^"), while "~=X.Y.Z"
// pins major and minor (semver "~"), per PEP 440.
func translateOperators(expr string) string {
	parts := strings.Split(expr, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case strings.HasPrefix(p, "=="):
			p = "=" + strings.TrimSpace(p[2:])
		case strings.HasPrefix(p, "~="):
			rest := strings.TrimSpace(p[2:])
			if strings.Count(rest, ".") >= 2 {
				p = "~" + rest
			} else {
				p = "^" + rest
			}
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

// Check reports whether version v satisfies the constraint.
func (c Constraint) Check(v Version) bool {
	if c.c == nil || v.v == nil {
		return false
	}
	return c.c.Check(v.v)
}

// And returns the conjunction of two constraints.
func (c Constraint) And(o Constraint) Constraint {
	switch {
	case c.c == nil:
		return o
	case o.c == nil:
		return c
	case c.raw == "*":
		return o
	case o.raw == "*":
		return c
	}
	joined, err := ParseConstraint(c.raw + "," + o.raw)
	if err != nil {
		// Both operands parsed individually, so the conjunction parses too.
		panic(err)
	}
	return joined
}

// String returns the constraint in its original pip-style spelling.
func (c Constraint) String() string {
	return c.raw
}
