// Package fsutil provides file system helpers for fragment discovery.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryError indicates that the fragment root could not be read.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovering fragments under %q: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// FindFragmentFiles recursively searches rootPath for files ending with the
// given extension and returns their full paths. WalkDir visits entries in
// lexicographic order per directory level, so the result is deterministic
// across runs on an unchanged tree.
func FindFragmentFiles(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, &DiscoveryError{Root: rootPath, Err: err}
	}
	if !info.IsDir() {
		return nil, &DiscoveryError{Root: rootPath, Err: fmt.Errorf("not a directory")}
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, &DiscoveryError{Root: rootPath, Err: err}
	}

	return files, nil
}
