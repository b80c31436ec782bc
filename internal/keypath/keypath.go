// Package keypath provides the dotted option-path type used to address
// values inside fragment and merged configurations.
package keypath

import (
	"fmt"
	"strings"
)

// Path is a parsed dotted option path such as "shell.packages". The zero
// value addresses the configuration root.
type Path []string

// Parse splits a dotted path string into its segments. Empty paths and
// empty segments are rejected.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("option path must not be empty")
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("option path %q contains an empty segment", s)
		}
	}
	return Path(segments), nil
}

// MustParse is Parse for statically known paths. It panics on invalid input.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path with the given segment appended. The receiver
// is not modified.
func (p Path) Child(segment string) Path {
	child := make(Path, 0, len(p)+1)
	child = append(child, p...)
	return append(child, segment)
}

// Equal reports whether two paths address the same key.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
