package lockfile

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/vic/van/internal/ctxlog"
)

// Write renders the lockfile and replaces path atomically. renameio
// handles temp file creation, fsync and rename, so a crash mid-write never
// leaves a truncated lockfile behind.
func Write(ctx context.Context, path string, file *File) error {
	logger := ctxlog.FromContext(ctx)

	content, err := encodeBytes(file)
	if err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending lockfile: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug("cleanup pending lockfile", "error", err)
		}
	}()

	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("write lockfile data: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace lockfile: %w", err)
	}

	logger.Debug("Lockfile written.", "path", path, "dependencies", len(file.Dependencies))
	return nil
}

// Check reports whether the lockfile at path matches the freshly computed
// document. A missing file is simply stale, not an error.
func Check(path string, file *File) (bool, error) {
	want, err := encodeBytes(file)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read lockfile %s: %w", path, err)
	}

	return bytes.Equal(existing, want), nil
}
