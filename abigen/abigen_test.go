package abigen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/manifest"
)

func parseSource(t *testing.T, src string) (*Package, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "kv.go", src, parser.ParseComments)
	require.NoError(t, err)
	return ParseFiles(fset, []*ast.File{f})
}

const header = `package kv

import "github.com/c123chain/cdk-go/domain/entities"

var _ entities.ContractResult
`

func TestParseFiles(t *testing.T) {
	pkg, err := parseSource(t, header+`
//cdk:export
func Set(key []byte, value []byte) entities.ContractResult { return entities.Ok(nil) }

//cdk:export get
func Fetch(key []byte, amount entities.U128, n, m int64) entities.ContractResult { return entities.Ok(nil) }

//cdk:export
func Touch() {}

func notExported(x float64) {}

//cdk:exporter
func Near(x float64) {}
`)
	require.NoError(t, err)

	assert.Equal(t, "kv", pkg.Name)
	require.Len(t, pkg.Functions, 3)

	assert.Equal(t, "Set", pkg.Functions[0].Name)
	assert.Equal(t, "Touch", pkg.Functions[1].Name)
	assert.False(t, pkg.Functions[1].Returns)
	assert.Empty(t, pkg.Functions[1].Params)

	get := pkg.Functions[2]
	assert.Equal(t, "get", get.Name)
	assert.Equal(t, "Fetch", get.GoName)
	assert.Equal(t, "x676574", get.ExportName())
	assert.True(t, get.Returns)
	assert.Equal(t, []Param{
		{Name: "key", Tag: manifest.TypeBytes},
		{Name: "amount", Tag: manifest.TypeU128},
		{Name: "n", Tag: manifest.TypeI64},
		{Name: "m", Tag: manifest.TypeI64},
	}, get.Params)

	m := pkg.Manifest()
	require.NoError(t, manifest.Validate(m))
	e, ok := m.Lookup("x676574")
	require.True(t, ok)
	assert.Equal(t, manifest.TypeContractResult, e.Return)
}

func TestParseFiles_RootPackageTypes(t *testing.T) {
	pkg, err := parseSource(t, `package kv

import sdk "github.com/c123chain/cdk-go"

//cdk:export
func Mint(amount sdk.U128, delta sdk.I128) sdk.ContractResult { return sdk.ContractResult{} }
`)
	require.NoError(t, err)
	require.Len(t, pkg.Functions, 1)
	assert.Equal(t, []Param{
		{Name: "amount", Tag: manifest.TypeU128},
		{Name: "delta", Tag: manifest.TypeI128},
	}, pkg.Functions[0].Params)
}

func TestParseFiles_CompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  cdkerrors.CompileKind
		param string
		typ   string
	}{
		{
			name:  "float parameter",
			src:   "//cdk:export\nfunc Set(x float64) {}",
			kind:  cdkerrors.UnsupportedArgType,
			param: "x",
			typ:   "float64",
		},
		{
			name:  "duplicate parameter",
			src:   "//cdk:export\nfunc Set(x uint32, x uint32) {}",
			kind:  cdkerrors.DuplicateIdentifier,
			param: "x",
		},
		{
			name: "method receiver",
			src:  "type C struct{}\n\n//cdk:export\nfunc (c *C) Set() {}",
			kind: cdkerrors.ExpectedFunctionArgs,
		},
		{
			name:  "blank parameter",
			src:   "//cdk:export\nfunc Set(_ uint32) {}",
			kind:  cdkerrors.ExpectedIdentifier,
			param: "_",
		},
		{
			name: "unnamed parameter",
			src:  "//cdk:export\nfunc Set(uint32) {}",
			kind: cdkerrors.ExpectedIdentifier,
			typ:  "uint32",
		},
		{
			name:  "variadic parameter",
			src:   "//cdk:export\nfunc Set(xs ...uint32) {}",
			kind:  cdkerrors.UnsupportedArgType,
			param: "xs",
			typ:   "...uint32",
		},
		{
			name:  "fixed array",
			src:   "//cdk:export\nfunc Set(k [20]byte) {}",
			kind:  cdkerrors.UnsupportedArgType,
			param: "k",
			typ:   "[20]byte",
		},
		{
			name:  "foreign U128",
			src:   "//cdk:export\nfunc Set(v big.U128) {}",
			kind:  cdkerrors.UnsupportedArgType,
			param: "v",
			typ:   "big.U128",
		},
		{
			name: "int result",
			src:  "//cdk:export\nfunc Get() int { return 0 }",
			kind: cdkerrors.UnsupportedReturnType,
			typ:  "int",
		},
		{
			name: "two results",
			src:  "//cdk:export\nfunc Get() (entities.ContractResult, error) { return entities.ContractResult{}, nil }",
			kind: cdkerrors.UnsupportedReturnType,
			typ:  "(entities.ContractResult, error)",
		},
		{
			name: "generic function",
			src:  "//cdk:export\nfunc Get[T any](v T) {}",
			kind: cdkerrors.UnsupportedArgType,
			typ:  "type parameter any",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, header+"\n"+tt.src+"\n")
			require.Error(t, err)

			var ce *cdkerrors.CompileError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.kind, ce.Kind)
			assert.Equal(t, tt.param, ce.Param)
			assert.Equal(t, tt.typ, ce.Type)
			assert.NotEmpty(t, ce.Pos)
		})
	}
}

func TestParseFiles_ErrorPosition(t *testing.T) {
	_, err := parseSource(t, "package kv\n\n//cdk:export\nfunc Set(x float64) {}\n")
	require.Error(t, err)
	assert.Equal(t,
		`kv.go:4:10: func Set: parameter "x": expected one of: bool, uint32, int32, uint64, int64, U128, I128, string, []byte (got float64)`,
		err.Error())
}

func TestParseFiles_DuplicateExport(t *testing.T) {
	_, err := parseSource(t, header+`
//cdk:export
func Get() {}

//cdk:export Get
func Fetch() {}
`)
	require.Error(t, err)
	assert.True(t, cdkerrors.IsCompileKind(err, cdkerrors.DuplicateExport))
}

func TestParseFiles_ReservedIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		typ  string
	}{
		{"dispatch function", "func dispatch_Get() {}", "dispatch_Get"},
		{"export variable", "var export_count int", "export_count"},
		{"table type", "type ABI struct{}", "ABI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, header+"\n"+tt.src+"\n")
			require.Error(t, err)

			var ce *cdkerrors.CompileError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, cdkerrors.ReservedIdentifier, ce.Kind)
			assert.Equal(t, tt.typ, ce.Type)
			assert.NotEmpty(t, ce.Pos)
		})
	}

	// Methods live in their type's namespace.
	_, err := parseSource(t, header+"\ntype C struct{}\n\nfunc (C) dispatch_Get() {}\n")
	assert.NoError(t, err)
}

func TestGenerate_CaseDistinctNames(t *testing.T) {
	pkg, err := parseSource(t, header+`
//cdk:export
func get() {}

//cdk:export
func Get() {}
`)
	require.NoError(t, err)

	out, err := Generate(pkg, FormatJSON)
	require.NoError(t, err)

	declared := func(src []byte) map[string]int {
		f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
		require.NoError(t, err)
		names := make(map[string]int)
		for _, decl := range f.Decls {
			if fn, ok := decl.(*ast.FuncDecl); ok {
				names[fn.Name.Name]++
			}
		}
		return names
	}

	assert.Equal(t, map[string]int{"ABI": 1, "dispatch_Get": 1, "dispatch_get": 1}, declared(out.Dispatch))
	assert.Equal(t, map[string]int{"export_Get": 1, "export_get": 1}, declared(out.Exports))
	assert.Contains(t, string(out.Exports), "//go:wasmexport x476574\nfunc export_Get() {\n\tdispatch_Get()\n}")
	assert.Contains(t, string(out.Exports), "//go:wasmexport x676574\nfunc export_get() {\n\tdispatch_get()\n}")
}

func TestParseFiles_ReportsAllErrors(t *testing.T) {
	_, err := parseSource(t, header+`
//cdk:export
func A(x float64) {}

//cdk:export
func B() int { return 0 }
`)
	require.Error(t, err)
	assert.True(t, cdkerrors.IsCompileKind(err, cdkerrors.UnsupportedArgType))
	assert.True(t, cdkerrors.IsCompileKind(err, cdkerrors.UnsupportedReturnType))
}

func TestGenerate_Golden(t *testing.T) {
	pkg, err := ParseDir(filepath.Join("testdata", "token"))
	require.NoError(t, err)
	require.Len(t, pkg.Functions, 4, "test files must not be scanned")

	out, err := Generate(pkg, FormatJSON)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "token.dispatch", out.Dispatch)
	g.Assert(t, "token.exports", out.Exports)
	g.Assert(t, "token.manifest", out.Manifest)

	m, err := manifest.ParseJSON(out.Manifest)
	require.NoError(t, err)
	assert.Equal(t, pkg.Manifest(), m)
}

func TestGenerate_YAML(t *testing.T) {
	pkg, err := ParseDir(filepath.Join("testdata", "token"))
	require.NoError(t, err)

	out, err := Generate(pkg, FormatYAML)
	require.NoError(t, err)

	m, err := manifest.ParseYAML(out.Manifest)
	require.NoError(t, err)
	assert.Len(t, m.Entries, 4)
	assert.Equal(t, "x7472616e73666572", m.Entries[3].ExportName)
}

func copyFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(filepath.Join("testdata", "token"))
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("testdata", "token", e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	return dir
}

func TestRun(t *testing.T) {
	dir := copyFixture(t)
	cfg := DefaultConfig(dir)

	res, err := Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "zz_abi_gen.go"),
		filepath.Join(dir, "zz_abi_wasip1_gen.go"),
		filepath.Join(dir, "abi.json"),
	}, res.Files)

	m, err := manifest.Load(filepath.Join(dir, "abi.json"))
	require.NoError(t, err)
	assert.Equal(t, "token", m.Package)

	// A second run ignores its own output.
	_, err = Run(cfg)
	require.NoError(t, err)

	cfg.Check = true
	_, err = Run(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "abi.json"), []byte("{}"), 0o644))
	_, err = Run(cfg)
	assert.ErrorIs(t, err, ErrStale)
}

func TestRun_ExampleUpToDate(t *testing.T) {
	cfg := DefaultConfig(filepath.Join("..", "examples", "kvstore"))
	cfg.Check = true

	res, err := Run(cfg)
	require.NoError(t, err, "run go generate ./examples/kvstore")
	assert.Len(t, res.Package.Functions, 14)
}

func TestRun_CompileErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package bad\n\n//cdk:export\nfunc Bad(x float64) {}\n"), 0o644))

	_, err := Run(DefaultConfig(dir))
	require.Error(t, err)
	assert.True(t, cdkerrors.IsCompileKind(err, cdkerrors.UnsupportedArgType))

	_, statErr := os.Stat(filepath.Join(dir, "zz_abi_gen.go"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "abi.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfig(t *testing.T) {
	require.NoError(t, DefaultConfig(".").Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing dir", func(c *Config) { c.Dir = "" }},
		{"bad format", func(c *Config) { c.Format = "toml" }},
		{"non-go output", func(c *Config) { c.GoOutput = "abi.txt" }},
		{"same outputs", func(c *Config) { c.WasmOutput = c.GoOutput }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(".")
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(dir), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("format: yaml\nmanifest: abi.yaml\n"), 0o644))
	cfg, err = LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, "abi.yaml", cfg.Manifest)
	assert.Equal(t, "zz_abi_gen.go", cfg.GoOutput)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("format: xml\n"), 0o644))
	_, err = LoadConfig(dir)
	assert.Error(t, err)
}
