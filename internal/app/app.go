package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/imports"
	"github.com/vic/van/internal/materialize"
	"github.com/vic/van/internal/merge"
	"github.com/vic/van/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   config.Loader
	registry *registry.Registry
	resolver fetch.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, the built-in
// artifact registry and the offline pinning resolver.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		loader:   loader,
		registry: materialize.DefaultRegistry(),
		resolver: fetch.NewPinned(""),
	}
}

// WithResolver swaps the dependency resolver. This is primarily for tests.
func (a *App) WithResolver(resolver fetch.Resolver) *App {
	a.resolver = resolver
	return a
}

// evaluate runs the collect, import-sort and merge stages. It is the
// shared front half of every command.
func (a *App) evaluate(ctx context.Context, appConfig *Config) (*merge.Result, error) {
	fragments, err := a.loader.Load(ctx, appConfig.RootPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Fragments loaded.", "count", len(fragments))

	ordered, err := imports.Sort(fragments)
	if err != nil {
		return nil, err
	}

	result, err := merge.Merge(ordered)
	if err != nil {
		return nil, fmt.Errorf("merging fragments: %w", err)
	}
	a.logger.Debug("Fragments merged.", "dependencies", len(result.Dependencies))
	return result, nil
}
