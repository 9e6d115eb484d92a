package entities

// ContractResult is the envelope an invocation hands back to the host:
// either Ok carrying result data or Err carrying a UTF-8 message.
type ContractResult struct {
	// Data is the result payload when OK is true.
	Data []byte `json:"data,omitempty"`

	// Message is the error text when OK is false.
	Message string `json:"error,omitempty"`

	// OK selects the variant.
	OK bool `json:"ok"`
}

// Ok creates a successful result.
func Ok(data []byte) ContractResult {
	return ContractResult{OK: true, Data: data}
}

// Err creates a failed result with the given message.
func Err(message string) ContractResult {
	return ContractResult{Message: message}
}

// ErrFrom creates a failed result from an error value.
func ErrFrom(err error) ContractResult {
	return Err(err.Error())
}

// IsOk reports whether the result is the Ok variant.
func (r ContractResult) IsOk() bool { return r.OK }

// IsErr reports whether the result is the Err variant.
func (r ContractResult) IsErr() bool { return !r.OK }

// Payload returns the bytes carried on the wire: the data for Ok, the
// message bytes for Err.
func (r ContractResult) Payload() []byte {
	if r.OK {
		return r.Data
	}
	return []byte(r.Message)
}
