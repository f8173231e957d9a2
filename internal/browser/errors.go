package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrElementTimeout is returned when a bounded element lookup expires
	// before the element appears. For the "Show More" control this is the
	// normal end-of-listing signal, not a failure.
	ErrElementTimeout = errors.New("element lookup timed out")

	// ErrBinaryNotFound is returned when the configured browser binary path
	// does not exist.
	ErrBinaryNotFound = errors.New("browser binary not found")

	// ErrBinaryNotExecutable is returned when the configured browser binary
	// exists but lacks execute permission.
	ErrBinaryNotExecutable = errors.New("browser binary is not executable")
)

// ObstructionError reports that a click was intercepted by an overlay
// element. BlockingClass is the overlay's class attribute, which the
// obstruction resolver uses to locate and hide it.
//
// A click failure that cannot be attributed to a covering element does not
// produce an ObstructionError; it surfaces as-is and the session treats it
// as fatal.
type ObstructionError struct {
	// BlockingClass is the class attribute of the covering element.
	BlockingClass string
}

// Error implements the error interface.
func (e *ObstructionError) Error() string {
	return fmt.Sprintf("click intercepted by element with class %q", e.BlockingClass)
}
