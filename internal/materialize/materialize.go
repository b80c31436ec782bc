package materialize

import (
	"context"
	"fmt"
	"slices"

	"github.com/vic/van/internal/ctxlog"
	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/merge"
	"github.com/vic/van/internal/registry"
)

// Materializer evaluates a merged configuration into concrete artifacts
// for a single target platform. It is a pure, single-pass transform: the
// only side effect is the dependency prefetch delegated to the resolver.
type Materializer struct {
	registry *registry.Registry
	resolver fetch.Resolver
}

// New creates a Materializer with the given artifact registry and
// dependency resolver.
func New(reg *registry.Registry, resolver fetch.Resolver) *Materializer {
	return &Materializer{registry: reg, resolver: resolver}
}

// DefaultRegistry returns a registry with the built-in artifact kinds:
// shell, binary and formatter.
func DefaultRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register("shell", buildShell)
	reg.Register("binary", buildBinary)
	reg.Register("formatter", buildFormatter)
	return reg
}

// Run materializes every artifact declared in the merged configuration.
// The target platform must be listed in the merged `platforms` option; an
// absent or empty set supports nothing.
func (m *Materializer) Run(ctx context.Context, result *merge.Result, platform string) ([]*registry.Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	supported := result.StringSlice("platforms")
	if !slices.Contains(supported, platform) {
		return nil, &UnsupportedPlatformError{Requested: platform, Supported: supported}
	}

	pins, err := fetch.Prefetch(ctx, m.resolver, result.Dependencies)
	if err != nil {
		return nil, err
	}

	declared, ok := result.Lookup("artifact")
	if !ok {
		logger.Debug("No artifacts declared.")
		return nil, nil
	}
	if declared.Kind() != merge.KindMapping {
		return nil, fmt.Errorf("the 'artifact' option path must hold a mapping, got %s", declared.Kind())
	}

	var artifacts []*registry.Artifact
	for _, kind := range declared.Keys() {
		builder, ok := m.registry.Builder(kind)
		if !ok {
			return nil, fmt.Errorf("no builder registered for artifact kind %q (known kinds: %v)", kind, m.registry.Kinds())
		}

		instances, _ := declared.Entry(kind)
		if instances.Kind() != merge.KindMapping {
			return nil, fmt.Errorf("artifact kind %q must hold named instances", kind)
		}

		for _, name := range instances.Keys() {
			inputs, _ := instances.Entry(name)
			artifact, err := builder(ctx, &registry.Request{
				Kind:     kind,
				Name:     name,
				Platform: platform,
				Inputs:   inputs,
				Config:   result,
				Pins:     pins,
			})
			if err != nil {
				return nil, err
			}
			logger.Debug("Materialized artifact.", "kind", kind, "name", name, "file", artifact.FileName)
			artifacts = append(artifacts, artifact)
		}
	}

	return artifacts, nil
}
