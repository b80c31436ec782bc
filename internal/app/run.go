package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vic/van/internal/ctxlog"
	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/lockfile"
	"github.com/vic/van/internal/materialize"
	"github.com/vic/van/internal/watch"
)

// watchDebounce coalesces editor save bursts into a single regeneration.
const watchDebounce = 250 * time.Millisecond

// Run executes the requested command against the fragment tree.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", appConfig.Command)

	switch appConfig.Command {
	case CommandBuild:
		return a.runBuild(ctx, appConfig)
	case CommandLock:
		return a.runLock(ctx, appConfig)
	default:
		return fmt.Errorf("unknown command %q", appConfig.Command)
	}
}

// runBuild merges the fragment tree and writes materialized artifacts to
// the output directory.
func (a *App) runBuild(ctx context.Context, appConfig *Config) error {
	result, err := a.evaluate(ctx, appConfig)
	if err != nil {
		return err
	}

	materializer := materialize.New(a.registry, a.resolver)
	artifacts, err := materializer.Run(ctx, result, appConfig.Platform)
	if err != nil {
		return err
	}

	if len(artifacts) == 0 {
		a.logger.Warn("No artifacts declared, nothing to build.")
		return nil
	}

	if err := os.MkdirAll(appConfig.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", appConfig.OutDir, err)
	}

	for _, artifact := range artifacts {
		path := filepath.Join(appConfig.OutDir, artifact.FileName)
		if err := os.WriteFile(path, artifact.Content, artifact.Mode); err != nil {
			return fmt.Errorf("writing artifact %s/%s: %w", artifact.Kind, artifact.Name, err)
		}
		a.logger.Info("Artifact written.", "kind", artifact.Kind, "name", artifact.Name, "path", path)
	}

	return nil
}

// runLock regenerates the lockfile, verifies it with -check, or keeps
// regenerating with -watch.
func (a *App) runLock(ctx context.Context, appConfig *Config) error {
	if appConfig.Check {
		return a.checkLock(ctx, appConfig)
	}

	if err := a.writeLock(ctx, appConfig); err != nil {
		return err
	}
	if !appConfig.Watch {
		return nil
	}

	watcher, err := watch.New(appConfig.RootPath, ".hcl")
	if err != nil {
		return fmt.Errorf("starting fragment watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			a.logger.Debug("closing watcher", "error", err)
		}
	}()

	a.logger.Info("Watching fragment tree.", "root", appConfig.RootPath)
	err = watcher.Run(ctx, watchDebounce, func(ctx context.Context) error {
		return a.writeLock(ctx, appConfig)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// computeLock runs the pipeline up to a fully assembled lockfile document.
func (a *App) computeLock(ctx context.Context, appConfig *Config) (*lockfile.File, error) {
	result, err := a.evaluate(ctx, appConfig)
	if err != nil {
		return nil, err
	}

	pins, err := fetch.Prefetch(ctx, a.resolver, result.Dependencies)
	if err != nil {
		return nil, err
	}

	return lockfile.Build(appConfig.RootPath, result, pins), nil
}

func (a *App) writeLock(ctx context.Context, appConfig *Config) error {
	file, err := a.computeLock(ctx, appConfig)
	if err != nil {
		return err
	}
	if err := lockfile.Write(ctx, appConfig.LockPath, file); err != nil {
		return err
	}
	a.logger.Info("Lockfile regenerated.", "path", appConfig.LockPath, "dependencies", len(file.Dependencies))
	return nil
}

func (a *App) checkLock(ctx context.Context, appConfig *Config) error {
	file, err := a.computeLock(ctx, appConfig)
	if err != nil {
		return err
	}

	current, err := lockfile.Check(appConfig.LockPath, file)
	if err != nil {
		return err
	}
	if !current {
		return fmt.Errorf("lockfile %s is out of date; run 'van lock' to regenerate", appConfig.LockPath)
	}

	a.logger.Info("Lockfile is up to date.", "path", appConfig.LockPath)
	return nil
}
