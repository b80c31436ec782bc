package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# fragment\n"), 0o644))
}

func TestFindFragmentFiles(t *testing.T) {
	t.Run("finds files recursively in deterministic order", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "b.hcl"))
		writeFile(t, filepath.Join(root, "a.hcl"))
		writeFile(t, filepath.Join(root, "sub", "c.hcl"))
		writeFile(t, filepath.Join(root, "notes.txt"))

		files, err := FindFragmentFiles(root, ".hcl")
		require.NoError(t, err)

		want := []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "sub", "c.hcl"),
		}
		assert.Equal(t, want, files)

		again, err := FindFragmentFiles(root, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, files, again, "order must be stable across runs")
	})

	t.Run("missing root is a DiscoveryError", func(t *testing.T) {
		_, err := FindFragmentFiles(filepath.Join(t.TempDir(), "nope"), ".hcl")
		require.Error(t, err)

		var discErr *DiscoveryError
		require.True(t, errors.As(err, &discErr))
		assert.Contains(t, discErr.Error(), "nope")
	})

	t.Run("file root is a DiscoveryError", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "plain.hcl")
		writeFile(t, path)

		_, err := FindFragmentFiles(path, ".hcl")
		var discErr *DiscoveryError
		require.True(t, errors.As(err, &discErr))
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = FindFragmentFiles(t.TempDir(), "")
		})
	})
}
