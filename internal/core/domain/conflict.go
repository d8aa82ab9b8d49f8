package domain

import "strings"

// ConstraintOrigin is one constraint on a package together with where it
// came from. RequiredBy is empty for a direct request.
type ConstraintOrigin struct {
	Constraint Constraint
	RequiredBy PackageName
}

// Conflict describes a package whose accumulated constraints could not be
// jointly satisfied by any available version.
type Conflict struct {
	Name PackageName

	// Origins are the constraints that could not be jointly satisfied.
	Origins []ConstraintOrigin

	// Chain is the requirement chain from a direct request down to Name,
	// e.g. [app, framework, Name].
	Chain []PackageName
}

// ConflictReport is returned when resolution exhausts every candidate
// assignment. It satisfies errors.Is(err, ErrResolutionConflict).
type ConflictReport struct {
	Conflicts []Conflict
}

func (r *ConflictReport) Error() string {
	var b strings.Builder
	b.WriteString(ErrResolutionConflict.Error())
	for _, c := range r.Conflicts {
		b.WriteString(": no version of ")
		b.WriteString(c.Name.String())
		b.WriteString(" satisfies")
		for i, o := range c.Origins {
			if i > 0 {
				b.WriteString(" and")
			}
			b.WriteString(" ")
			b.WriteString(c.Name.String())
			b.WriteString(o.Constraint.String())
			if o.RequiredBy != "" {
				b.WriteString(" (required by ")
				b.WriteString(o.RequiredBy.String())
				b.WriteString(")")
			}
		}
	}
	return b.String()
}

func (r *ConflictReport) Unwrap() error {
	return ErrResolutionConflict
}

// Involves reports whether the given package appears in the report, either
// as the conflicting package itself or as a requiring package.
func (r *ConflictReport) Involves(name PackageName) bool {
	for _, c := range r.Conflicts {
		if c.Name == name {
			return true
		}
		for _, o := range c.Origins {
			if o.RequiredBy == name {
				return true
			}
		}
		for _, link := range c.Chain {
			if link == name {
				return true
			}
		}
	}
	return false
}
