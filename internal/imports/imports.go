// Package imports resolves the fragment import graph into a merge order.
//
// Each fragment may import other fragments (paths relative to its own
// directory). The graph must be acyclic; Sort orders fragments so that
// every fragment's imports precede it, which gives importers the last
// word under the merger's ordering rules. Unrelated fragments keep their
// discovery order.
package imports

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vic/van/internal/config"
)

// CycleError reports an import cycle among fragments. The stack lists the
// fragments on the cycle, importer first.
type CycleError struct {
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("fragment import cycle: %s", strings.Join(e.Stack, " -> "))
}

// Sort returns the fragments reordered so that imports come before their
// importers. It fails if an import references a fragment that was never
// loaded, or if the import graph has a cycle.
func Sort(fragments []*config.Fragment) ([]*config.Fragment, error) {
	byPath := make(map[string]*config.Fragment, len(fragments))
	for _, fragment := range fragments {
		byPath[fragment.Path] = fragment
	}

	// Classic depth-first traversal with permanent and temporary marks.
	// A temporary mark hit during descent means the import chain loops.
	permanent := make(map[string]bool, len(fragments))
	temporary := make(map[string]bool)
	ordered := make([]*config.Fragment, 0, len(fragments))

	var visit func(fragment *config.Fragment, chain []string) error
	visit = func(fragment *config.Fragment, chain []string) error {
		if permanent[fragment.Path] {
			return nil
		}
		if temporary[fragment.Path] {
			return &CycleError{Stack: append(chain, fragment.Name)}
		}
		temporary[fragment.Path] = true

		dir := filepath.Dir(fragment.Path)
		for _, imp := range fragment.Imports {
			target := filepath.Clean(filepath.Join(dir, imp))
			imported, ok := byPath[target]
			if !ok {
				return fmt.Errorf("fragment %s imports %q, which was not loaded", fragment.Name, imp)
			}
			if err := visit(imported, append(chain, fragment.Name)); err != nil {
				return err
			}
		}

		delete(temporary, fragment.Path)
		permanent[fragment.Path] = true
		ordered = append(ordered, fragment)
		return nil
	}

	for _, fragment := range fragments {
		if err := visit(fragment, nil); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}
