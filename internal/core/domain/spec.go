package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageSpec is a request for a package under a version constraint.
type PackageSpec struct {
	Name       PackageName
	Constraint Constraint
}

// ParseSpec parses a pip-style requirement string such as "foo", "foo==1.2"
// or "foo>=1.0,<2.0" into a PackageSpec. A bare name means any version.
func ParseSpec(raw string) (PackageSpec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PackageSpec{}, zerr.With(ErrInvalidSpec, "raw", raw)
	}

	idx := strings.IndexAny(trimmed, "=<>!~")
	if idx == 0 {
		return PackageSpec{}, zerr.With(ErrInvalidSpec, "raw", raw)
	}
	if idx < 0 {
		return PackageSpec{Name: NormalizeName(trimmed), Constraint: AnyVersion()}, nil
	}

	name := NormalizeName(trimmed[:idx])
	if name == "" {
		return PackageSpec{}, zerr.With(ErrInvalidSpec, "raw", raw)
	}
	constraint, err := ParseConstraint(trimmed[idx:])
	if err != nil {
		return PackageSpec{}, err
	}
	return PackageSpec{Name: name, Constraint: constraint}, nil
}

// String renders the spec in requirement syntax, e.g. "foo>=1.0".
func (s PackageSpec) String() string {
	if s.Constraint.raw == "" || s.Constraint.raw == "*" {
		return s.Name.String()
	}
	return s.Name.String() + s.Constraint.raw
}

// ResolvedPackage is the metadata for one concrete candidate version:
// the package, the version, and the dependencies it declares at that version.
type ResolvedPackage struct {
	Name         PackageName
	Version      Version
	Dependencies []PackageSpec
}
