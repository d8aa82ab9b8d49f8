package domain

import (
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// State records what is installed in an environment: at most one Version per
// PackageName.
type State map[PackageName]Version

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	return maps.Clone(s)
}

// Names returns the package names sorted lexicographically.
func (s State) Names() []PackageName {
	names := slices.Collect(maps.Keys(s))
	slices.Sort(names)
	return names
}

// Equal reports whether two states record identical package sets.
func (s State) Equal(o State) bool {
	if len(s) != len(o) {
		return false
	}
	for name, v := range s {
		ov, ok := o[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Lines renders the state in pip-freeze form: one "name==version" line per
// package, sorted by name for determinism.
func (s State) Lines() []string {
	lines := make([]string, 0, len(s))
	for _, name := range s.Names() {
		lines = append(lines, name.String()+"=="+s[name].String())
	}
	return lines
}

// Fingerprint computes a stable hash of the state, used for the optimistic
// stale-baseline check before commit.
func (s State) Fingerprint() uint64 {
	h := xxhash.New()
	for _, line := range s.Lines() {
		_, _ = h.WriteString(line)
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

// ParseStateLines parses pip-freeze style lines back into a State. Blank
// lines and '#' comments are skipped.
func ParseStateLines(lines []string) (State, error) {
	st := make(State, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rawVersion, ok := strings.Cut(line, "==")
		if !ok {
			return nil, ErrStateCorrupt
		}
		v, err := ParseVersion(rawVersion)
		if err != nil {
			return nil, err
		}
		st[NormalizeName(name)] = v
	}
	return st, nil
}
