package merge

import (
	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/keypath"
)

// Result is the single resolved configuration produced by merging. Every
// path present in at least one fragment appears exactly once. Results are
// built once per evaluation and read-only afterward.
type Result struct {
	root         *Value
	Dependencies map[string]*config.Dependency
}

// Merge combines the given fragments, in order, into one Result. The
// caller is expected to have sorted the fragments so that imports precede
// their importers; within that order later fragments win scalar conflicts
// unless an earlier value is force-marked.
func Merge(fragments []*config.Fragment) (*Result, error) {
	result := &Result{
		root:         newMapping(""),
		Dependencies: make(map[string]*config.Dependency),
	}

	for _, fragment := range fragments {
		for _, assignment := range fragment.Assignments {
			incoming := fromCty(assignment.Value, assignment.Force, assignment.Origin)
			if err := insert(result.root, assignment.Path, incoming); err != nil {
				return nil, err
			}
		}
		for _, dep := range fragment.Dependencies {
			mergeDependency(result.Dependencies, dep)
		}
	}

	return result, nil
}

// insert writes a value at the given path, creating intermediate mappings
// as needed and merging with whatever is already present at the leaf.
func insert(root *Value, path keypath.Path, incoming *Value) error {
	node := root
	for _, segment := range path[:len(path)-1] {
		child, ok := node.entries[segment]
		if !ok || child.kind != KindMapping {
			// A non-mapping intermediate is replaced outright; the later
			// fragment wins, same as any other kind mismatch.
			child = newMapping(incoming.origin)
			node.entries[segment] = child
		}
		node = child
	}

	leaf := path[len(path)-1]
	merged, err := mergeValues(path, node.entries[leaf], incoming)
	if err != nil {
		return err
	}
	node.entries[leaf] = merged
	return nil
}

// mergeValues applies the merge rules at one path: mappings union and
// recurse, sequences concatenate in fragment order, scalars are
// last-writer-wins unless force-marked. Two distinct forced scalars at the
// same path conflict.
func mergeValues(path keypath.Path, existing, incoming *Value) (*Value, error) {
	if existing == nil {
		return incoming, nil
	}

	switch {
	case existing.kind == KindMapping && incoming.kind == KindMapping:
		for _, key := range incoming.Keys() {
			merged, err := mergeValues(path.Child(key), existing.entries[key], incoming.entries[key])
			if err != nil {
				return nil, err
			}
			existing.entries[key] = merged
		}
		existing.origin = incoming.origin
		return existing, nil

	case existing.kind == KindSequence && incoming.kind == KindSequence:
		existing.elems = append(existing.elems, incoming.elems...)
		existing.origin = incoming.origin
		return existing, nil

	case existing.kind == KindScalar && incoming.kind == KindScalar:
		switch {
		case existing.forced && incoming.forced:
			if existing.scalar.RawEquals(incoming.scalar) {
				return existing, nil
			}
			return nil, &ConflictError{
				Path:         path,
				FirstOrigin:  existing.origin,
				SecondOrigin: incoming.origin,
				FirstValue:   existing.scalar,
				SecondValue:  incoming.scalar,
			}
		case existing.forced:
			return existing, nil
		default:
			return incoming, nil
		}

	default:
		// Kind mismatch: the later fragment replaces the value wholesale.
		return incoming, nil
	}
}

// mergeDependency merges a dependency declaration by name: the later pin
// wins wholesale, while follows constraints union key-wise.
func mergeDependency(deps map[string]*config.Dependency, dep *config.Dependency) {
	merged := &config.Dependency{
		Name:   dep.Name,
		Source: dep.Source,
		Origin: dep.Origin,
	}
	if len(dep.Follows) > 0 {
		merged.Follows = make(map[string]string, len(dep.Follows))
		for k, v := range dep.Follows {
			merged.Follows[k] = v
		}
	}

	if existing, ok := deps[dep.Name]; ok {
		for k, v := range existing.Follows {
			if _, present := merged.Follows[k]; !present {
				if merged.Follows == nil {
					merged.Follows = make(map[string]string)
				}
				merged.Follows[k] = v
			}
		}
	}

	deps[dep.Name] = merged
}

// Root returns the top of the merged option tree.
func (r *Result) Root() *Value {
	return r.root
}

// Lookup walks the merged tree by dotted path.
func (r *Result) Lookup(path string) (*Value, bool) {
	parsed, err := keypath.Parse(path)
	if err != nil {
		return nil, false
	}
	node := r.root
	for _, segment := range parsed {
		if node.kind != KindMapping {
			return nil, false
		}
		child, ok := node.entries[segment]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// String is a convenience lookup for scalar string options.
func (r *Result) String(path string) (string, bool) {
	node, ok := r.Lookup(path)
	if !ok {
		return "", false
	}
	return node.AsString()
}

// StringSlice is a convenience lookup for sequences of strings. Missing
// paths yield a nil slice.
func (r *Result) StringSlice(path string) []string {
	node, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	values, ok := node.AsStringSlice()
	if !ok {
		return nil
	}
	return values
}
