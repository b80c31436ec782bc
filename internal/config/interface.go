package config

import (
	"context"
)

// Loader is the interface for a format-specific fragment loader.
type Loader interface {
	// Load discovers every fragment under root, parses the files and any
	// fragments they import, and translates them into the format-agnostic
	// model. Fragments are returned in discovery order; import ordering is
	// the caller's concern.
	Load(ctx context.Context, root string) ([]*Fragment, error)
}
