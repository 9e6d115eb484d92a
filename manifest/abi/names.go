package abi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ExportPrefix starts every export name.
const ExportPrefix = "x"

var (
	ErrExportPrefix = errors.New("export name must start with \"x\"")
	ErrExportHex    = errors.New("export name is not lowercase hex")
	ErrExportUTF8   = errors.New("export name does not decode to UTF-8")
)

// ExportName maps a function name to its wasm export name: "x" followed by
// the lowercase hex of the name's bytes. "set" becomes "x736574".
func ExportName(function string) string {
	return ExportPrefix + hex.EncodeToString([]byte(function))
}

// FunctionName reverses ExportName.
func FunctionName(export string) (string, error) {
	if len(export) < len(ExportPrefix) || export[:len(ExportPrefix)] != ExportPrefix {
		return "", fmt.Errorf("%w: %q", ErrExportPrefix, export)
	}
	digits := export[len(ExportPrefix):]
	for _, c := range digits {
		if c >= 'A' && c <= 'F' {
			return "", fmt.Errorf("%w: %q", ErrExportHex, export)
		}
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrExportHex, export, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %q", ErrExportUTF8, export)
	}
	return string(raw), nil
}
