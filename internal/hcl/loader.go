package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/ctxlog"
	"github.com/vic/van/internal/fsutil"
	"github.com/vic/van/internal/schema"
)

// Extension is the file suffix that marks a fragment file.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL fragment loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every fragment under root, parses them, then chases
// import references until the set is closed. Fragments keep discovery
// order; imported files outside the root are appended as they are found.
func (l *Loader) Load(ctx context.Context, root string) ([]*config.Fragment, error) {
	logger := ctxlog.FromContext(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving fragment root %q: %w", root, err)
	}

	files, err := fsutil.FindFragmentFiles(absRoot, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered fragment files.", "root", absRoot, "count", len(files))

	parser := hclparse.NewParser()
	loaded := make(map[string]*config.Fragment, len(files))
	var fragments []*config.Fragment

	queue := files
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		if _, seen := loaded[path]; seen {
			continue
		}

		fragment, err := l.parseFile(ctx, parser, absRoot, path)
		if err != nil {
			return nil, err
		}
		loaded[path] = fragment
		fragments = append(fragments, fragment)
		logger.Debug("Loaded fragment.", "fragment", fragment.Name)

		// Imports may point outside the discovered tree; queue anything new.
		dir := filepath.Dir(path)
		for _, imp := range fragment.Imports {
			target := filepath.Clean(filepath.Join(dir, imp))
			if _, seen := loaded[target]; !seen {
				queue = append(queue, target)
			}
		}
	}

	logger.Debug("Fragment loading complete.", "count", len(fragments))
	return fragments, nil
}

// parseFile parses a single fragment file and translates it into the
// format-agnostic model.
func (l *Loader) parseFile(ctx context.Context, parser *hclparse.Parser, root, path string) (*config.Fragment, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse fragment %s: %w", path, diags)
	}

	var raw schema.Fragment
	diags = gohcl.DecodeBody(hclFile.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode fragment %s: %w", path, diags)
	}

	return l.translate(ctx, root, path, &raw)
}
