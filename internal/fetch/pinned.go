package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vic/van/internal/config"
)

// DefaultStoreDir is where pinned dependency content is addressed by
// default.
const DefaultStoreDir = "/van/store"

// Pinned is an offline Resolver. It derives a deterministic pin from the
// dependency's source reference and follows constraints alone, without
// touching the network. Identical declarations always resolve to the same
// store path, which keeps the whole pipeline idempotent.
type Pinned struct {
	StoreDir string
}

// NewPinned creates a Pinned resolver rooted at storeDir. An empty
// storeDir selects DefaultStoreDir.
func NewPinned(storeDir string) *Pinned {
	if storeDir == "" {
		storeDir = DefaultStoreDir
	}
	return &Pinned{StoreDir: storeDir}
}

// Resolve derives the pin for one dependency.
func (p *Pinned) Resolve(_ context.Context, dep *config.Dependency) (Pin, error) {
	if dep.Source == "" {
		return Pin{}, fmt.Errorf("dependency %q has no source reference", dep.Name)
	}

	digest := sha256.New()
	digest.Write([]byte(dep.Source))

	// Follows constraints change the resolved content, so they are part
	// of the hash. Keys are sorted to keep the digest stable.
	keys := make([]string, 0, len(dep.Follows))
	for k := range dep.Follows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(digest, "|%s=%s", k, dep.Follows[k])
	}

	hash := hex.EncodeToString(digest.Sum(nil))
	short := hash[:32]

	return Pin{
		Name:      dep.Name,
		Source:    dep.Source,
		Hash:      hash,
		StorePath: filepath.Join(p.StoreDir, short+"-"+dep.Name),
	}, nil
}
