// Package registry maps artifact kinds to the builder functions that
// materialize them. The registry is populated at startup and read-only
// during evaluation, so a mismatch between configuration and code surfaces
// before any artifact is built.
package registry

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/merge"
)

// Artifact is a materialized output ready to be written to disk.
type Artifact struct {
	Kind     string
	Name     string
	FileName string
	Content  []byte
	Mode     fs.FileMode
}

// Request carries everything a builder needs to materialize one artifact.
type Request struct {
	// Kind is the artifact kind (the first block label).
	Kind string
	// Name is the artifact instance name (the second block label).
	Name string
	// Platform is the target platform identifier.
	Platform string
	// Inputs is the artifact's merged attribute mapping. May be an empty
	// mapping when the artifact block had no attributes.
	Inputs *merge.Value
	// Config is the full merged configuration, for cross-cutting settings
	// such as trust declarations.
	Config *merge.Result
	// Pins holds the resolved external dependencies, keyed by name.
	Pins map[string]fetch.Pin
}

// BuilderFunc materializes one artifact kind.
type BuilderFunc func(ctx context.Context, req *Request) (*Artifact, error)

// Registry stores the kind-to-builder mapping.
type Registry struct {
	builders map[string]BuilderFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register adds a builder for an artifact kind. Registering the same kind
// twice is a programmer error.
func (r *Registry) Register(kind string, builder BuilderFunc) {
	if _, exists := r.builders[kind]; exists {
		panic(fmt.Sprintf("artifact builder for kind '%s' already registered", kind))
	}
	r.builders[kind] = builder
}

// Builder looks up the builder for a kind.
func (r *Registry) Builder(kind string) (BuilderFunc, bool) {
	builder, ok := r.builders[kind]
	return builder, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
