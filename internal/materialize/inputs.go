package materialize

import (
	"fmt"

	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/merge"
	"github.com/vic/van/internal/registry"
)

// artifactRef renders the "kind/name" form used in error messages.
func artifactRef(req *registry.Request) string {
	return req.Kind + "/" + req.Name
}

// stringInput reads an optional scalar string attribute from the
// artifact's merged inputs.
func stringInput(req *registry.Request, key string) (string, bool, error) {
	if req.Inputs == nil {
		return "", false, nil
	}
	node, ok := req.Inputs.Entry(key)
	if !ok {
		return "", false, nil
	}
	value, ok := node.AsString()
	if !ok {
		return "", false, fmt.Errorf("artifact %s: input %q must be a string", artifactRef(req), key)
	}
	return value, true, nil
}

// stringSliceInput reads an optional list-of-strings attribute.
func stringSliceInput(req *registry.Request, key string) ([]string, error) {
	if req.Inputs == nil {
		return nil, nil
	}
	node, ok := req.Inputs.Entry(key)
	if !ok {
		return nil, nil
	}
	values, ok := node.AsStringSlice()
	if !ok {
		return nil, fmt.Errorf("artifact %s: input %q must be a list of strings", artifactRef(req), key)
	}
	return values, nil
}

// stringMapInput reads an optional string-to-string mapping attribute.
func stringMapInput(req *registry.Request, key string) (map[string]string, error) {
	if req.Inputs == nil {
		return nil, nil
	}
	node, ok := req.Inputs.Entry(key)
	if !ok {
		return nil, nil
	}
	values, ok := node.AsStringMap()
	if !ok {
		return nil, fmt.Errorf("artifact %s: input %q must be a map of strings", artifactRef(req), key)
	}
	return values, nil
}

// resolvePin looks up a referenced dependency, failing when it has no
// satisfying pinned entry.
func resolvePin(req *registry.Request, name string) (fetch.Pin, error) {
	pin, ok := req.Pins[name]
	if !ok {
		return fetch.Pin{}, &UnresolvedDependencyError{Name: name, Artifact: artifactRef(req)}
	}
	return pin, nil
}

// trustExports renders the trusted-source declarations forwarded verbatim
// from the merged configuration, if any.
func trustExports(result *merge.Result) []string {
	var lines []string
	if substituter, ok := result.String("trust.substituter"); ok {
		lines = append(lines, fmt.Sprintf("export VAN_SUBSTITUTER=%q", substituter))
	}
	if publicKey, ok := result.String("trust.public_key"); ok {
		lines = append(lines, fmt.Sprintf("export VAN_TRUSTED_PUBLIC_KEY=%q", publicKey))
	}
	return lines
}
