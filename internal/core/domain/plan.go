package domain

// OpKind identifies the kind of an installation operation.
type OpKind string

const (
	// OpInstall adds a package that is not currently present.
	OpInstall OpKind = "install"
	// OpUpgrade replaces an installed version with a different one.
	OpUpgrade OpKind = "upgrade"
	// OpRemove deletes an installed package.
	OpRemove OpKind = "remove"
)

// Operation is one step of an install plan.
type Operation struct {
	Kind OpKind
	Name PackageName

	// Version is the version being installed, upgraded to, or removed.
	Version Version

	// From is the previously installed version. Set only for OpUpgrade.
	From Version
}

// String renders the operation for logs and progress output.
func (op Operation) String() string {
	switch op.Kind {
	case OpUpgrade:
		return "upgrade " + op.Name.String() + " " + op.From.String() + " -> " + op.Version.String()
	case OpRemove:
		return "remove " + op.Name.String() + " " + op.Version.String()
	default:
		return "install " + op.Name.String() + " " + op.Version.String()
	}
}

// Plan is an ordered sequence of operations taking an environment from its
// current state to a target state. Installs and upgrades come first in
// dependency order; removals follow in reverse dependency order.
type Plan struct {
	Ops []Operation
}

// Empty reports whether the plan contains no operations.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Ops) == 0
}

// Mutations returns the install and upgrade operations in plan order.
func (p *Plan) Mutations() []Operation {
	ops := make([]Operation, 0, len(p.Ops))
	for _, op := range p.Ops {
		if op.Kind != OpRemove {
			ops = append(ops, op)
		}
	}
	return ops
}

// Removals returns the remove operations in plan order.
func (p *Plan) Removals() []Operation {
	ops := make([]Operation, 0, len(p.Ops))
	for _, op := range p.Ops {
		if op.Kind == OpRemove {
			ops = append(ops, op)
		}
	}
	return ops
}
