// Package lockfile builds and writes the generated dependency manifest.
//
// The lockfile is a one-way build artifact: it declares the full external
// dependency list (name, source, resolved pin, follows constraints) and
// the evaluation entry point, but the pipeline never reads it back as
// input. Staleness is checked by recomputing, not by trusting the file.
package lockfile

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/vic/van/internal/fetch"
	"github.com/vic/van/internal/merge"
)

// Header marks the lockfile as generated. It is the first line of every
// written lockfile.
const Header = "# Code generated by van. DO NOT EDIT."

// File is the lockfile document.
type File struct {
	// Root is the fragment directory the lockfile was computed from.
	Root string `toml:"root"`
	// Platforms is the configured platform set at generation time.
	Platforms []string `toml:"platforms,omitempty"`
	// Dependencies lists every pinned external input, sorted by name.
	Dependencies []Entry `toml:"dependency,omitempty"`
}

// Entry is one pinned dependency.
type Entry struct {
	Name      string            `toml:"name"`
	Source    string            `toml:"source"`
	Hash      string            `toml:"hash"`
	StorePath string            `toml:"store_path"`
	Follows   map[string]string `toml:"follows,omitempty"`
}

// Build assembles the lockfile document from a merged configuration and
// its resolved pins. Entries are sorted by name so output is stable.
func Build(root string, result *merge.Result, pins map[string]fetch.Pin) *File {
	file := &File{
		Root:      root,
		Platforms: result.StringSlice("platforms"),
	}

	names := make([]string, 0, len(result.Dependencies))
	for name := range result.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dep := result.Dependencies[name]
		pin := pins[name]
		file.Dependencies = append(file.Dependencies, Entry{
			Name:      name,
			Source:    dep.Source,
			Hash:      pin.Hash,
			StorePath: pin.StorePath,
			Follows:   dep.Follows,
		})
	}

	return file
}

// Encode writes the lockfile document, header first, in TOML form.
func Encode(w io.Writer, file *File) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(file)
}

// encodeBytes renders the lockfile to a byte slice.
func encodeBytes(file *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, file); err != nil {
		return nil, fmt.Errorf("encoding lockfile: %w", err)
	}
	return buf.Bytes(), nil
}
