package merge

import (
	"fmt"

	"github.com/vic/van/internal/keypath"
	"github.com/zclconf/go-cty/cty"
)

// ConflictError reports two distinct force-marked values at the same path.
// Both fragment origins are included so the user can find the collision.
type ConflictError struct {
	Path         keypath.Path
	FirstOrigin  string
	SecondOrigin string
	FirstValue   cty.Value
	SecondValue  cty.Value
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting forced values at %q: %s (from %s) vs %s (from %s)",
		e.Path.String(),
		e.FirstValue.GoString(), e.FirstOrigin,
		e.SecondValue.GoString(), e.SecondOrigin,
	)
}
