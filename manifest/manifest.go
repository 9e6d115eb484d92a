// Package manifest describes the exported entry points of a contract.
//
// The ABI generator produces one Entry per exported function. The table is
// written next to the contract as abi.json (or abi.yaml) and embedded in the
// generated source; hosts read it to find exports and encode arguments.
// This package adds validation, the file formats and the JSON Schema to the
// table types of package abi.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/c123chain/cdk-go/manifest/abi"
)

// SchemaVersion is the manifest format version written by this package.
const SchemaVersion = abi.SchemaVersion

// The table types are defined in package abi so generated contract code can
// embed them without this package's dependencies.
type (
	Manifest = abi.Manifest
	Entry    = abi.Entry
	Param    = abi.Param
)

var validate = validator.New()

func init() {
	if err := validate.RegisterValidation("typetag", func(fl validator.FieldLevel) bool {
		return TypeTag(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("register typetag validation: %v", err))
	}
}

// New returns an empty manifest for pkg.
func New(pkg string) *Manifest {
	return &Manifest{Version: SchemaVersion, Package: pkg, Entries: []Entry{}}
}

// ErrDuplicateExport is returned by Validate when two entries share an
// export name.
var ErrDuplicateExport = errors.New("duplicate export name")

// Validate checks field constraints, that every export name is derived from
// its function name and that export names are unique.
func Validate(m *Manifest) error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	seen := make(map[string]string, len(m.Entries))
	for _, e := range m.Entries {
		if want := ExportName(e.Function); e.ExportName != want {
			return fmt.Errorf("manifest validation failed: function %s: export name %q, want %q", e.Function, e.ExportName, want)
		}
		if prev, dup := seen[e.ExportName]; dup {
			return fmt.Errorf("%w: %s (functions %s and %s)", ErrDuplicateExport, e.ExportName, prev, e.Function)
		}
		seen[e.ExportName] = e.Function
	}
	return nil
}

// JSON returns the indented JSON form used for abi.json.
func JSON(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAML returns the YAML form used for abi.yaml.
func YAML(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// ParseJSON decodes and validates a JSON manifest.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseYAML decodes and validates a YAML manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
