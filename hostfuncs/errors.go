package hostfuncs

import (
	"errors"
	"fmt"
)

// ErrUnknownImport is returned when a registry is asked for an import it
// does not hold.
var ErrUnknownImport = errors.New("unknown host import")

// TrapError stops the invocation because an import could not be served:
// a malformed region, an out-of-bounds pointer or a failing backend.
type TrapError struct {
	// Import is the name of the failing import, e.g. "read_db".
	Import string
	Err    error
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("host import %s: %v", e.Import, e.Err)
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// AbortError is returned by panic_contract. It carries the contract's
// message verbatim.
type AbortError struct {
	Message string
}

func (e *AbortError) Error() string {
	return "contract aborted: " + e.Message
}

// NewTrapError wraps err for the named import unless it already is a
// TrapError or an AbortError.
func NewTrapError(name string, err error) error {
	var trap *TrapError
	var abort *AbortError
	if errors.As(err, &trap) || errors.As(err, &abort) {
		return err
	}
	return &TrapError{Import: name, Err: err}
}

// NewPanicError converts a value recovered from an import into a TrapError.
func NewPanicError(name string, panicValue any) *TrapError {
	if err, ok := panicValue.(error); ok {
		return &TrapError{Import: name, Err: fmt.Errorf("panic: %w", err)}
	}
	return &TrapError{Import: name, Err: fmt.Errorf("panic: %v", panicValue)}
}
