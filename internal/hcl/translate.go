// This file translates the HCL schema structs from the schema package into
// the format-agnostic fragment model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/keypath"
	"github.com/vic/van/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translate converts a decoded schema.Fragment into the agnostic model. All
// expressions are evaluated statically; fragments have no variable scope.
func (l *Loader) translate(_ context.Context, root, path string, raw *schema.Fragment) (*config.Fragment, error) {
	name, err := filepath.Rel(root, path)
	if err != nil {
		name = path
	}

	fragment := &config.Fragment{
		Path:    path,
		Name:    name,
		Imports: raw.Imports,
	}

	for _, dep := range raw.Dependencies {
		fragment.Dependencies = append(fragment.Dependencies, &config.Dependency{
			Name:    dep.Name,
			Source:  dep.Source,
			Follows: dep.Follows,
			Origin:  name,
		})
	}

	for _, opt := range raw.Options {
		p, err := keypath.Parse(opt.Path)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", name, err)
		}
		val, diags := opt.Value.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("fragment %s: evaluating option %q: %w", name, opt.Path, diags)
		}
		fragment.Assignments = append(fragment.Assignments, &config.Assignment{
			Path:   p,
			Value:  val,
			Force:  opt.Force,
			Origin: name,
		})
	}

	for _, artifact := range raw.Artifacts {
		assignment, err := translateArtifact(name, artifact)
		if err != nil {
			return nil, err
		}
		fragment.Assignments = append(fragment.Assignments, assignment)
	}

	fragment.Assignments = append(fragment.Assignments, translateTrust(name, raw.Trust)...)

	passthrough, err := translateOpenAttributes(name, raw)
	if err != nil {
		return nil, err
	}
	fragment.Assignments = append(fragment.Assignments, passthrough...)

	return fragment, nil
}

// translateArtifact folds an artifact block into the option tree at
// `artifact.<kind>.<name>`, so deep-merge rules apply when several
// fragments contribute attributes of the same artifact.
func translateArtifact(origin string, artifact *schema.Artifact) (*config.Assignment, error) {
	attrs, diags := artifact.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("fragment %s: artifact %q %q: %w", origin, artifact.Kind, artifact.Name, diags)
	}

	values := make(map[string]cty.Value, len(attrs))
	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("fragment %s: artifact %q %q, attribute %q: %w",
				origin, artifact.Kind, artifact.Name, attrName, diags)
		}
		values[attrName] = val
	}

	value := cty.EmptyObjectVal
	if len(values) > 0 {
		value = cty.ObjectVal(values)
	}

	return &config.Assignment{
		Path:   keypath.Path{"artifact", artifact.Kind, artifact.Name},
		Value:  value,
		Origin: origin,
	}, nil
}

// translateTrust expands the trust block into `trust.*` assignments,
// forwarded verbatim into materialization.
func translateTrust(origin string, trust *schema.Trust) []*config.Assignment {
	if trust == nil {
		return nil
	}
	var assignments []*config.Assignment
	if trust.Substituter != "" {
		assignments = append(assignments, &config.Assignment{
			Path:   keypath.Path{"trust", "substituter"},
			Value:  cty.StringVal(trust.Substituter),
			Origin: origin,
		})
	}
	if trust.PublicKey != "" {
		assignments = append(assignments, &config.Assignment{
			Path:   keypath.Path{"trust", "public_key"},
			Value:  cty.StringVal(trust.PublicKey),
			Origin: origin,
		})
	}
	return assignments
}

// translateOpenAttributes passes any remaining top-level attributes through
// verbatim as assignments at their own names (open schema). Unknown blocks
// are rejected by JustAttributes.
func translateOpenAttributes(origin string, raw *schema.Fragment) ([]*config.Assignment, error) {
	attrs, diags := raw.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("fragment %s: %w", origin, diags)
	}

	names := make([]string, 0, len(attrs))
	for attrName := range attrs {
		names = append(names, attrName)
	}
	sort.Strings(names)

	var assignments []*config.Assignment
	for _, attrName := range names {
		val, diags := attrs[attrName].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("fragment %s: evaluating attribute %q: %w", origin, attrName, diags)
		}
		assignments = append(assignments, &config.Assignment{
			Path:   keypath.Path{attrName},
			Value:  val,
			Origin: origin,
		})
	}
	return assignments, nil
}
