// Package fetch resolves declared dependency references into concrete,
// content-addressed pins. It is the delegation seam for anything that
// talks to the network or a cache: the merge/evaluate pipeline only ever
// sees the Resolver interface and a finished pin map.
package fetch

import (
	"context"
	"fmt"
	"sort"

	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Pin is the resolved form of a dependency reference.
type Pin struct {
	Name      string
	Source    string
	Hash      string
	StorePath string
}

// Resolver resolves a declared dependency into a concrete pin.
// Implementations may fetch over the network, consult a local store, or
// derive pins offline.
type Resolver interface {
	Resolve(ctx context.Context, dep *config.Dependency) (Pin, error)
}

// prefetchWorkers bounds resolver concurrency during Prefetch.
const prefetchWorkers = 8

// Prefetch resolves every dependency concurrently and returns the pins
// keyed by name. The parallelism stays inside this collaborator; callers
// see a plain map. The first resolver error cancels the remaining work.
func Prefetch(ctx context.Context, resolver Resolver, deps map[string]*config.Dependency) (map[string]Pin, error) {
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	pins := make([]Pin, len(names))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(prefetchWorkers)

	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			pin, err := resolver.Resolve(ctx, deps[name])
			if err != nil {
				return fmt.Errorf("resolving dependency %q: %w", name, err)
			}
			pins[i] = pin
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]Pin, len(names))
	for i, name := range names {
		result[name] = pins[i]
	}
	logger.Debug("Dependency prefetch complete.", "count", len(result))
	return result, nil
}
