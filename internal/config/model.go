package config

import (
	"github.com/vic/van/internal/keypath"
	"github.com/zclconf/go-cty/cty"
)

// Fragment is the format-agnostic representation of one configuration
// fragment file. Fragments are immutable once loaded; the merger owns them
// for the duration of its pass.
type Fragment struct {
	// Path is the absolute location of the source file.
	Path string
	// Name is the path relative to the fragment root, used in logs and
	// error messages.
	Name string
	// Imports lists imported fragment files, relative to this fragment's
	// directory.
	Imports []string

	Dependencies []*Dependency
	Assignments  []*Assignment
}

// Dependency is a named, pinned external input declared by a fragment.
type Dependency struct {
	Name    string
	Source  string
	Follows map[string]string
	// Origin is the fragment file that declared this dependency.
	Origin string
}

// Assignment sets a single dotted option path to a value.
type Assignment struct {
	Path  keypath.Path
	Value cty.Value
	// Force marks the value to win over ordering-based merge rules.
	Force bool
	// Origin is the fragment file the assignment came from.
	Origin string
}
