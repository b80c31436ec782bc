package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Fragment represents the top-level structure of a single fragment file.
// Anything not matched by a named field lands in Body and is treated as an
// open-schema option assignment (e.g. the `platforms` attribute).
type Fragment struct {
	Imports      []string      `hcl:"import,optional"`
	Dependencies []*Dependency `hcl:"dependency,block"`
	Options      []*Option     `hcl:"option,block"`
	Artifacts    []*Artifact   `hcl:"artifact,block"`
	Trust        *Trust        `hcl:"trust,block"`
	Body         hcl.Body      `hcl:",remain"`
}

// Dependency represents a `dependency` block: a named, pinned external input.
type Dependency struct {
	Name    string            `hcl:"name,label"`
	Source  string            `hcl:"source"`
	Follows map[string]string `hcl:"follows,optional"`
}

// Option represents an `option` block assigning a value to a dotted key path.
type Option struct {
	Path  string         `hcl:"path,label"`
	Value hcl.Expression `hcl:"value"`
	Force bool           `hcl:"force,optional"`
}

// Artifact represents an `artifact` block. Its attributes are kept as a raw
// body; the loader folds them into the option tree under
// `artifact.<kind>.<name>` so merge rules apply to artifact inputs too.
type Artifact struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Trust represents the `trust` block: trusted-source declarations forwarded
// verbatim into materialization.
type Trust struct {
	Substituter string `hcl:"substituter,optional"`
	PublicKey   string `hcl:"public_key,optional"`
}
