// Package watch re-runs a callback whenever the fragment tree changes.
// It exists for lock -watch: the pipeline itself stays a one-shot
// transform, and this package just re-invokes it.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vic/van/internal/ctxlog"
)

// Watcher observes a fragment root directory, recursively.
type Watcher struct {
	root      string
	extension string
	notifier  *fsnotify.Watcher
}

// New creates a watcher over every directory under root. Only events for
// files with the given extension trigger the callback.
func New(root, extension string) (*Watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{root: root, extension: extension, notifier: notifier}
	if err := w.addRecursive(root); err != nil {
		_ = notifier.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.notifier.Add(path)
		}
		return nil
	})
}

// Run blocks, invoking fn after each burst of relevant events, until the
// context is canceled. Events are debounced so an editor save (often a
// write plus a rename) triggers a single rebuild. Callback errors are
// logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, debounce time.Duration, fn func(context.Context) error) error {
	logger := ctxlog.FromContext(ctx)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.notifier.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories must be watched too; Add on a plain
				// file fails harmlessly on some platforms, so errors are
				// ignored here.
				_ = w.addRecursive(event.Name)
			}
			if !strings.HasSuffix(event.Name, w.extension) {
				continue
			}
			logger.Debug("Fragment change detected.", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case err, ok := <-w.notifier.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-pending:
			pending = nil
			if err := fn(ctx); err != nil {
				logger.Error("Rebuild after change failed.", "error", err)
			}
		}
	}
}

// Close releases the underlying file system watches.
func (w *Watcher) Close() error {
	return w.notifier.Close()
}
