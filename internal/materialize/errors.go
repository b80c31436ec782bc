package materialize

import (
	"fmt"
	"strings"
)

// UnresolvedDependencyError reports an artifact referencing an external
// dependency that has no satisfying entry.
type UnresolvedDependencyError struct {
	// Name is the missing dependency reference.
	Name string
	// Artifact identifies the referencing artifact as "kind/name".
	Artifact string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("artifact %s references unresolved dependency %q", e.Artifact, e.Name)
}

// UnsupportedPlatformError reports a materialization request for a platform
// outside the configured platform set.
type UnsupportedPlatformError struct {
	Requested string
	Supported []string
}

func (e *UnsupportedPlatformError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("platform %q is not supported: no platforms configured", e.Requested)
	}
	return fmt.Sprintf("platform %q is not supported (configured platforms: %s)",
		e.Requested, strings.Join(e.Supported, ", "))
}
