package abigen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/manifest"
)

// Directive marks a function for export.
const Directive = "//cdk:export"

// Import paths whose U128, I128 and ContractResult types are accepted.
var typePackages = map[string]bool{
	"github.com/c123chain/cdk-go":                 true,
	"github.com/c123chain/cdk-go/domain/entities": true,
}

var builtinTags = map[string]manifest.TypeTag{
	"bool":   manifest.TypeBool,
	"uint32": manifest.TypeU32,
	"int32":  manifest.TypeI32,
	"uint64": manifest.TypeU64,
	"int64":  manifest.TypeI64,
	"string": manifest.TypeString,
}

var qualifiedTags = map[string]manifest.TypeTag{
	"U128": manifest.TypeU128,
	"I128": manifest.TypeI128,
}

// Param is a parameter of an exported function.
type Param struct {
	Name string
	Tag  manifest.TypeTag
}

// Function is an exported function.
type Function struct {
	// GoName is the identifier in source; Name is the ABI name, which
	// differs when the directive carries one.
	GoName  string
	Name    string
	Params  []Param
	Returns bool
	Pos     token.Position
}

// ExportName returns the wasm export name.
func (f Function) ExportName() string {
	return manifest.ExportName(f.Name)
}

// Package is the parsed contract package.
type Package struct {
	Name      string
	Dir       string
	Functions []Function
}

// Manifest returns the ABI table of the package.
func (p *Package) Manifest() *manifest.Manifest {
	m := manifest.New(p.Name)
	for _, f := range p.Functions {
		e := manifest.Entry{
			Function:   f.Name,
			ExportName: f.ExportName(),
			Params:     make([]manifest.Param, len(f.Params)),
		}
		for i, param := range f.Params {
			e.Params[i] = manifest.Param{Name: param.Name, Type: param.Tag}
		}
		if f.Returns {
			e.Return = manifest.TypeContractResult
		}
		m.Entries = append(m.Entries, e)
	}
	return m
}

// isGenerated reports whether name is one of the files this package writes.
func isGenerated(name string) bool {
	return strings.HasPrefix(name, "zz_abi_") && strings.HasSuffix(name, "_gen.go")
}

// ParseDir parses the non-test Go files of dir, skipping previously
// generated output.
func ParseDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || isGenerated(name) {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	pkg, err := ParseFiles(fset, files)
	if err != nil {
		return nil, err
	}
	pkg.Dir = dir
	return pkg, nil
}

// ParseFiles collects the exported functions of one package. All compile
// errors are reported together.
func ParseFiles(fset *token.FileSet, files []*ast.File) (*Package, error) {
	pkg := &Package{}
	var errs []error
	for _, f := range files {
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("files of packages %s and %s mixed", pkg.Name, f.Name.Name)
		}

		imports := importNames(f)
		errs = append(errs, reservedDecls(fset, f)...)
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			name, ok := directive(fn.Doc)
			if !ok {
				continue
			}
			parsed, err := parseFunc(fset, fn, imports)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if name != "" {
				parsed.Name = name
			}
			pkg.Functions = append(pkg.Functions, parsed)
		}
	}

	sort.SliceStable(pkg.Functions, func(i, j int) bool {
		return pkg.Functions[i].Name < pkg.Functions[j].Name
	})
	for i := 1; i < len(pkg.Functions); i++ {
		prev, cur := pkg.Functions[i-1], pkg.Functions[i]
		if prev.Name == cur.Name {
			errs = append(errs, &cdkerrors.CompileError{
				Kind: cdkerrors.DuplicateExport,
				Func: cur.GoName,
				Type: fmt.Sprintf("%s, also exported by %s", cur.ExportName(), prev.GoName),
				Pos:  position(cur.Pos),
			})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pkg, nil
}

// isReserved reports whether a package-level identifier would clash with
// generated code.
func isReserved(name string) bool {
	return name == TableFunc || strings.HasPrefix(name, DispatchPrefix) || strings.HasPrefix(name, WrapperPrefix)
}

// reservedDecls reports package-level declarations of f that use a name
// reserved for generated code.
func reservedDecls(fset *token.FileSet, f *ast.File) []error {
	var errs []error
	check := func(id *ast.Ident) {
		if id != nil && isReserved(id.Name) {
			errs = append(errs, &cdkerrors.CompileError{
				Kind: cdkerrors.ReservedIdentifier,
				Type: id.Name,
				Pos:  position(fset.Position(id.Pos())),
			})
		}
	}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				check(d.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					check(s.Name)
				case *ast.ValueSpec:
					for _, id := range s.Names {
						check(id)
					}
				}
			}
		}
	}
	return errs
}

// directive finds the export directive in a doc comment and returns the
// optional ABI name following it.
func directive(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if c.Text == Directive {
			return "", true
		}
		if rest, ok := strings.CutPrefix(c.Text, Directive+" "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// importNames maps the local name of each accepted type package to true.
func importNames(f *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || !typePackages[path] {
			continue
		}
		switch {
		case imp.Name != nil:
			names[imp.Name.Name] = true
		case path == "github.com/c123chain/cdk-go":
			names["cdk"] = true
		default:
			names[path[strings.LastIndex(path, "/")+1:]] = true
		}
	}
	return names
}

func position(p token.Position) string {
	if !p.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
}

func parseFunc(fset *token.FileSet, fn *ast.FuncDecl, imports map[string]bool) (Function, error) {
	out := Function{GoName: fn.Name.Name, Name: fn.Name.Name, Pos: fset.Position(fn.Pos())}

	if fn.Recv != nil {
		return out, &cdkerrors.CompileError{Kind: cdkerrors.ExpectedFunctionArgs, Func: out.GoName, Pos: position(out.Pos)}
	}
	if fn.Type.TypeParams != nil && len(fn.Type.TypeParams.List) > 0 {
		tp := fn.Type.TypeParams.List[0]
		return out, &cdkerrors.CompileError{
			Kind: cdkerrors.UnsupportedArgType,
			Func: out.GoName,
			Type: "type parameter " + types.ExprString(tp.Type),
			Pos:  position(fset.Position(tp.Pos())),
		}
	}

	seen := make(map[string]bool)
	for _, field := range fn.Type.Params.List {
		pos := position(fset.Position(field.Pos()))
		if len(field.Names) == 0 {
			return out, &cdkerrors.CompileError{Kind: cdkerrors.ExpectedIdentifier, Func: out.GoName, Type: types.ExprString(field.Type), Pos: pos}
		}
		tag, ok := paramTag(field.Type, imports)
		for _, ident := range field.Names {
			if ident.Name == "_" {
				return out, &cdkerrors.CompileError{Kind: cdkerrors.ExpectedIdentifier, Func: out.GoName, Param: "_", Pos: pos}
			}
			if seen[ident.Name] {
				return out, &cdkerrors.CompileError{Kind: cdkerrors.DuplicateIdentifier, Func: out.GoName, Param: ident.Name, Pos: pos}
			}
			seen[ident.Name] = true
			if !ok {
				return out, &cdkerrors.CompileError{
					Kind:  cdkerrors.UnsupportedArgType,
					Func:  out.GoName,
					Param: ident.Name,
					Type:  types.ExprString(field.Type),
					Pos:   pos,
				}
			}
			out.Params = append(out.Params, Param{Name: ident.Name, Tag: tag})
		}
	}

	if fn.Type.Results != nil {
		results := fn.Type.Results.List
		if len(results) != 1 || len(results[0].Names) > 1 || !isContractResult(results[0].Type, imports) {
			return out, &cdkerrors.CompileError{
				Kind: cdkerrors.UnsupportedReturnType,
				Func: out.GoName,
				Type: resultString(results),
				Pos:  position(fset.Position(fn.Type.Results.Pos())),
			}
		}
		out.Returns = true
	}
	return out, nil
}

func paramTag(expr ast.Expr, imports map[string]bool) (manifest.TypeTag, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		tag, ok := builtinTags[t.Name]
		return tag, ok
	case *ast.ArrayType:
		if t.Len != nil {
			return "", false
		}
		elem, ok := t.Elt.(*ast.Ident)
		if ok && (elem.Name == "byte" || elem.Name == "uint8") {
			return manifest.TypeBytes, true
		}
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if ok && imports[pkg.Name] {
			tag, ok := qualifiedTags[t.Sel.Name]
			return tag, ok
		}
	}
	return "", false
}

func isContractResult(expr ast.Expr, imports map[string]bool) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && imports[pkg.Name] && sel.Sel.Name == "ContractResult"
}

func resultString(results []*ast.Field) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		n := max(len(r.Names), 1)
		for range n {
			parts = append(parts, types.ExprString(r.Type))
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
