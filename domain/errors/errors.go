// Package errors provides the error taxonomy of the kit.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// Four families exist:
//   - DecodeError: malformed or truncated wire input; recoverable, surfaced to
//     the host as a ContractResult error.
//   - CompileError: raised by the ABI generator; build time only.
//   - Fault: memory-ownership violations, arithmetic faults and explicit
//     aborts; fatal to the current invocation.
//   - ContractError: business-level failures returned by contract code.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// DecodeKind categorizes a DecodeError.
type DecodeKind string

const (
	// UnexpectedEOF means a read needed more bytes than the buffer holds.
	UnexpectedEOF DecodeKind = "unexpected_eof"

	// InvalidUtf8 means a text field did not contain valid UTF-8.
	InvalidUtf8 DecodeKind = "invalid_utf8"

	// IrregularData means the bytes were present but not a valid encoding
	// (bad bool byte, unknown tag, malformed address text).
	IrregularData DecodeKind = "irregular_data"
)

// DecodeError is returned by the wire codec on malformed input.
type DecodeError struct {
	Err  error
	Kind DecodeKind
	What string // value being decoded, e.g. "u32" or "event attribute"
	Pos  int    // cursor position when the read started
	Want int    // bytes required (UnexpectedEOF only)
	Have int    // bytes remaining (UnexpectedEOF only)
}

func (e *DecodeError) Error() string {
	switch {
	case e.Kind == UnexpectedEOF:
		return fmt.Sprintf("decode %s at %d: unexpected eof (need %d bytes, have %d)", e.What, e.Pos, e.Want, e.Have)
	case e.Err != nil:
		return fmt.Sprintf("decode %s at %d: %s: %v", e.What, e.Pos, e.Kind, e.Err)
	default:
		return fmt.Sprintf("decode %s at %d: %s", e.What, e.Pos, e.Kind)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on kind alone: errors.Is(err, &DecodeError{Kind: UnexpectedEOF}).
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.What == "" && t.Err == nil
}

// IsDecodeKind reports whether err is a DecodeError of the given kind.
func IsDecodeKind(err error, kind DecodeKind) bool {
	var de *DecodeError
	return stdErrors.As(err, &de) && de.Kind == kind
}

// CompileKind categorizes a CompileError.
type CompileKind string

const (
	UnsupportedArgType    CompileKind = "unsupported_arg_type"
	UnsupportedReturnType CompileKind = "unsupported_return_type"
	ExpectedIdentifier    CompileKind = "expected_identifier"
	ExpectedFunctionArgs  CompileKind = "expected_function_args"
	DuplicateIdentifier   CompileKind = "duplicate_identifier"
	DuplicateExport       CompileKind = "duplicate_export"
	ReservedIdentifier    CompileKind = "reserved_identifier"
)

var compileMessages = map[CompileKind]string{
	UnsupportedArgType:    "expected one of: bool, uint32, int32, uint64, int64, U128, I128, string, []byte",
	UnsupportedReturnType: "expected ContractResult or no result",
	ExpectedIdentifier:    "expected identifier",
	ExpectedFunctionArgs:  "expected function args, found method receiver",
	DuplicateIdentifier:   "identifier used as parameter more than once",
	DuplicateExport:       "export name used more than once",
	ReservedIdentifier:    "identifier is reserved for generated code",
}

// CompileError is reported by the ABI generator for a function it refuses to
// export. Pos is a "file:line:col" position when known.
type CompileError struct {
	Kind  CompileKind
	Func  string
	Param string
	Type  string
	Pos   string
}

func (e *CompileError) Error() string {
	msg := compileMessages[e.Kind]
	if e.Type != "" {
		msg = fmt.Sprintf("%s (got %s)", msg, e.Type)
	}
	if e.Param != "" {
		msg = fmt.Sprintf("parameter %q: %s", e.Param, msg)
	}
	if e.Func != "" {
		msg = fmt.Sprintf("func %s: %s", e.Func, msg)
	}
	if e.Pos != "" {
		msg = e.Pos + ": " + msg
	}
	return msg
}

// IsCompileKind reports whether err is a CompileError of the given kind.
func IsCompileKind(err error, kind CompileKind) bool {
	var ce *CompileError
	return stdErrors.As(err, &ce) && ce.Kind == kind
}

// FaultKind categorizes a Fault.
type FaultKind string

const (
	// NullPointer is raised when a zero descriptor is consumed.
	NullPointer FaultKind = "null_pointer"

	// DoubleConsume is raised when a descriptor is consumed a second time.
	DoubleConsume FaultKind = "double_consume"

	// InvalidRegion is raised for descriptors that were never handed out or
	// that fail plausibility checks.
	InvalidRegion FaultKind = "invalid_region"

	// Arithmetic is raised by checked arithmetic on overflow or division by zero.
	Arithmetic FaultKind = "arithmetic"

	// Oversize is raised when a field exceeds the u32 length prefix.
	Oversize FaultKind = "oversize"

	// Abort is an explicit abort requested by contract code.
	Abort FaultKind = "abort"
)

// Fault is a fatal runtime fault. It is never returned as an error value by
// the guest runtime; it is reported to the host and then raised as a panic.
type Fault struct {
	Kind    FaultKind
	Message string
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return "fault: " + string(f.Kind)
	}
	if f.Kind == Abort || f.Kind == Arithmetic {
		return f.Message
	}
	return fmt.Sprintf("fault: %s: %s", f.Kind, f.Message)
}

// AsFault extracts a Fault from a recovered panic value or error.
func AsFault(v any) (*Fault, bool) {
	switch t := v.(type) {
	case *Fault:
		return t, true
	case error:
		var f *Fault
		if stdErrors.As(t, &f) {
			return f, true
		}
	}
	return nil, false
}

// ContractError is a business-level failure such as "insufficient funds".
type ContractError struct {
	Err     error
	Message string
}

// NewContractError creates a ContractError with a formatted message.
func NewContractError(format string, args ...any) *ContractError {
	return &ContractError{Message: fmt.Sprintf(format, args...)}
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
