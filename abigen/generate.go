package abigen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/c123chain/cdk-go/manifest"
)

// Header opens every generated file.
const Header = "// Code generated by cdkgen. DO NOT EDIT."

// MaxTupleArity is the widest codec.DecodeN helper.
const MaxTupleArity = 12

// Generated identifiers. A function F gets dispatch_F and export_F, which
// keeps them distinct for every pair of Go names. Contract packages may not
// declare names with these prefixes, nor TableFunc.
const (
	DispatchPrefix = "dispatch_"
	WrapperPrefix  = "export_"
	TableFunc      = "ABI"
)

var decoders = map[manifest.TypeTag]string{
	manifest.TypeBool:   "Bool",
	manifest.TypeU32:    "U32",
	manifest.TypeI32:    "I32",
	manifest.TypeU64:    "U64",
	manifest.TypeI64:    "I64",
	manifest.TypeU128:   "U128",
	manifest.TypeI128:   "I128",
	manifest.TypeString: "String",
	manifest.TypeBytes:  "Bytes",
}

type decodeGroup struct {
	Arity    int
	Vars     string
	Decoders string
}

type dispatcher struct {
	Func    Function
	Name    string
	Export  string
	Groups  []decodeGroup
	Args    string
	Returns bool
}

type fileData struct {
	Header      string
	Package     string
	Manifest    *manifest.Manifest
	Dispatchers []dispatcher
	NeedCodec   bool
	NeedRuntime bool
}

var funcs = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var dispatchTemplate = template.Must(template.New("dispatch").Funcs(funcs).Parse(`{{.Header}}

package {{.Package}}

import (
{{- if .NeedCodec}}
	cdkcodec "github.com/c123chain/cdk-go/codec"
	cdkentities "github.com/c123chain/cdk-go/domain/entities"
{{- end}}
	cdkabi "github.com/c123chain/cdk-go/manifest/abi"
{{- if .NeedRuntime}}
	cdkruntime "github.com/c123chain/cdk-go/runtime"
{{- end}}
)

// ABI returns the entry point table of this contract.
func ABI() cdkabi.Manifest {
	return cdkabi.Manifest{
		Version: {{.Manifest.Version}},
		Package: {{quote .Manifest.Package}},
		Entries: []cdkabi.Entry{
{{- range .Manifest.Entries}}
			{
				Function:   {{quote .Function}},
				ExportName: {{quote .ExportName}},
{{- if .Params}}
				Params: []cdkabi.Param{
{{- range .Params}}
					{Name: {{quote .Name}}, Type: {{quote (printf "%s" .Type)}}},
{{- end}}
				},
{{- else}}
				Params: []cdkabi.Param{},
{{- end}}
{{- if .Return}}
				Return: {{quote (printf "%s" .Return)}},
{{- end}}
			},
{{- end}}
		},
	}
}
{{range .Dispatchers}}
// {{.Name}} decodes the arguments of {{.Func.GoName}} and calls it.
func {{.Name}}() {
{{- if or .Groups .Returns}}
	_deps := cdkruntime.MakeDependencies()
{{- end}}
{{- if .Groups}}
	_src := cdkcodec.NewSource(_deps.API.Input())
{{- range .Groups}}
	{{.Vars}}, _err := cdkcodec.Decode{{.Arity}}(_src, {{.Decoders}})
	if _err != nil {
		_deps.API.Ret(cdkentities.Err(_err.Error()))
		return
	}
{{- end}}
{{- end}}
{{- if .Returns}}
	_deps.API.Ret({{.Func.GoName}}({{.Args}}))
{{- else}}
	{{.Func.GoName}}({{.Args}})
{{- end}}
}
{{end}}`))

var exportTemplate = template.Must(template.New("export").Parse(`{{.Header}}

//go:build wasip1

package {{.Package}}
{{range .Dispatchers}}
//go:wasmexport {{.Func.ExportName}}
func {{.Export}}() {
	{{.Name}}()
}
{{end}}`))

func newDispatcher(f Function) dispatcher {
	d := dispatcher{
		Func:    f,
		Name:    DispatchPrefix + f.GoName,
		Export:  WrapperPrefix + f.GoName,
		Returns: f.Returns,
	}

	args := make([]string, len(f.Params))
	for i := range f.Params {
		args[i] = fmt.Sprintf("arg%d", i)
	}
	d.Args = strings.Join(args, ", ")

	for start := 0; start < len(f.Params); start += MaxTupleArity {
		end := min(start+MaxTupleArity, len(f.Params))
		decs := make([]string, 0, end-start)
		for _, p := range f.Params[start:end] {
			decs = append(decs, "cdkcodec."+decoders[p.Tag])
		}
		d.Groups = append(d.Groups, decodeGroup{
			Arity:    end - start,
			Vars:     strings.Join(args[start:end], ", "),
			Decoders: strings.Join(decs, ", "),
		})
	}
	return d
}

func newFileData(pkg *Package) fileData {
	data := fileData{Header: Header, Package: pkg.Name, Manifest: pkg.Manifest()}
	for _, f := range pkg.Functions {
		d := newDispatcher(f)
		data.NeedCodec = data.NeedCodec || len(d.Groups) > 0
		data.NeedRuntime = data.NeedRuntime || len(d.Groups) > 0 || d.Returns
		data.Dispatchers = append(data.Dispatchers, d)
	}
	return data
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", t.Name(), err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s output: %w", t.Name(), err)
	}
	return out, nil
}

// Output holds the generated files of one package.
type Output struct {
	Dispatch []byte
	Exports  []byte
	Manifest []byte
}

// Generate renders the dispatchers, the wasm exports and the manifest of
// pkg. Manifest is encoded as JSON or YAML according to format.
func Generate(pkg *Package, manifestFormat string) (*Output, error) {
	data := newFileData(pkg)
	if err := manifest.Validate(data.Manifest); err != nil {
		return nil, err
	}

	dispatch, err := render(dispatchTemplate, data)
	if err != nil {
		return nil, err
	}

	wasm, err := render(exportTemplate, data)
	if err != nil {
		return nil, err
	}

	var m []byte
	switch manifestFormat {
	case FormatYAML:
		m, err = manifest.YAML(data.Manifest)
	default:
		m, err = manifest.JSON(data.Manifest)
	}
	if err != nil {
		return nil, err
	}

	return &Output{Dispatch: dispatch, Exports: wasm, Manifest: m}, nil
}
