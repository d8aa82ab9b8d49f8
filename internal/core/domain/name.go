// Package domain contains the core domain models for environment and package management.
package domain

import "strings"

// PackageName is a canonical package identifier.
//
// Two spellings that differ only in case or in runs of the separator
// characters '-', '_' and '.' refer to the same package. Always construct
// a PackageName through NormalizeName so comparisons stay canonical.
type PackageName string

// NormalizeName canonicalizes a raw package name: lowercased, with every run
// of '-', '_' and '.' collapsed to a single '-'.
func NormalizeName(raw string) PackageName {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	inSep := false
	for _, r := range lowered {
		if r == '-' || r == '_' || r == '.' {
			inSep = true
			continue
		}
		if inSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		inSep = false
		b.WriteRune(r)
	}
	return PackageName(b.String())
}

func (n PackageName) String() string {
	return string(n)
}
