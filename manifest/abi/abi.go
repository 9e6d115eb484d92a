// Package abi holds the ABI table types of a contract.
//
// Generated contract code embeds its table through this package, so it
// depends on the standard library only. Validation, file formats and the
// JSON Schema live in the parent manifest package, which host-side tools
// import.
package abi

// SchemaVersion is the table format version.
const SchemaVersion = 1

// TypeTag names a wire type in the table.
type TypeTag string

const (
	TypeBool   TypeTag = "bool"
	TypeU32    TypeTag = "u32"
	TypeI32    TypeTag = "i32"
	TypeU64    TypeTag = "u64"
	TypeI64    TypeTag = "i64"
	TypeU128   TypeTag = "u128"
	TypeI128   TypeTag = "i128"
	TypeString TypeTag = "string"
	TypeBytes  TypeTag = "bytes"

	// TypeContractResult is the only return tag.
	TypeContractResult TypeTag = "ContractResult"
)

// ParamTags lists the parameter tags in declaration order.
var ParamTags = []TypeTag{TypeBool, TypeU32, TypeI32, TypeU64, TypeI64, TypeU128, TypeI128, TypeString, TypeBytes}

// Valid reports whether t is a parameter tag.
func (t TypeTag) Valid() bool {
	for _, p := range ParamTags {
		if t == p {
			return true
		}
	}
	return false
}

// Param is one parameter of an exported function.
type Param struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	Type TypeTag `json:"type" yaml:"type" validate:"required,typetag" jsonschema:"enum=bool,enum=u32,enum=i32,enum=u64,enum=i64,enum=u128,enum=i128,enum=string,enum=bytes"`
}

// Entry describes one exported function.
type Entry struct {
	Function   string  `json:"function" yaml:"function" validate:"required"`
	ExportName string  `json:"export_name" yaml:"export_name" validate:"required" jsonschema:"pattern=^x([0-9a-f]{2})+$"`
	Params     []Param `json:"params" yaml:"params" validate:"dive"`
	Return     TypeTag `json:"return,omitempty" yaml:"return,omitempty" validate:"omitempty,oneof=ContractResult" jsonschema:"enum=ContractResult"`
}

// ParamTypes returns the parameter type tags in order.
func (e Entry) ParamTypes() []TypeTag {
	tags := make([]TypeTag, len(e.Params))
	for i, p := range e.Params {
		tags[i] = p.Type
	}
	return tags
}

// Manifest is the ABI table of one contract package.
type Manifest struct {
	Version int     `json:"version" yaml:"version" validate:"eq=1" jsonschema:"enum=1"`
	Package string  `json:"package" yaml:"package" validate:"required"`
	Entries []Entry `json:"entries" yaml:"entries" validate:"dive"`
}

// Lookup returns the entry with the given export name.
func (m *Manifest) Lookup(export string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.ExportName == export {
			return e, true
		}
	}
	return Entry{}, false
}

// Find returns the entry for the given function name.
func (m *Manifest) Find(function string) (Entry, bool) {
	return m.Lookup(ExportName(function))
}
