package export

import (
	"errors"
	"fmt"
)

// ErrNoSurface is returned when there is nothing to export. No rasterization
// is attempted.
var ErrNoSurface = errors.New("no renderable surface")

// Error represents a failed export step.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
