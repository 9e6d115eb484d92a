// Command tuplegen writes the DecodeN tuple decoders of package codec.
//
//	go run ./internal/tuplegen -max 12 -o codec/tuple_gen.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"strings"
	"text/template"
)

const header = `// Code generated by internal/tuplegen; DO NOT EDIT.

package {{.Package}}
`

const body = `
// Decode{{.N}} decodes {{.N}} values in order. On error the returned values
// are undefined and the Source must be abandoned.
func Decode{{.N}}[{{.TypeParams}} any](src *Source, {{.Params}}) ({{.Results}}, err error) {
{{- range .Idx}}
	if v{{.}}, err = d{{.}}.Decode(src); err != nil {
		return
	}
{{- end}}
	return
}
`

type arity struct {
	N          int
	Idx        []int
	TypeParams string
	Params     string
	Results    string
}

func newArity(n int) arity {
	a := arity{N: n}
	var tps, params, results []string
	for i := 1; i <= n; i++ {
		a.Idx = append(a.Idx, i)
		tps = append(tps, fmt.Sprintf("T%d", i))
		params = append(params, fmt.Sprintf("d%d Decoder[T%d]", i, i))
		results = append(results, fmt.Sprintf("v%d T%d", i, i))
	}
	a.TypeParams = strings.Join(tps, ", ")
	a.Params = strings.Join(params, ", ")
	a.Results = strings.Join(results, ", ")
	return a
}

// generate renders the decoders for arities 1..maxArity.
func generate(pkg string, maxArity int) ([]byte, error) {
	if maxArity < 1 {
		return nil, fmt.Errorf("max arity must be positive, got %d", maxArity)
	}
	var buf bytes.Buffer
	if err := template.Must(template.New("header").Parse(header)).Execute(&buf, struct{ Package string }{pkg}); err != nil {
		return nil, err
	}
	tmpl := template.Must(template.New("body").Parse(body))
	for n := 1; n <= maxArity; n++ {
		if err := tmpl.Execute(&buf, newArity(n)); err != nil {
			return nil, fmt.Errorf("render arity %d: %w", n, err)
		}
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

func main() {
	maxArity := flag.Int("max", 12, "largest tuple arity to generate")
	output := flag.String("o", "tuple_gen.go", "output file")
	pkg := flag.String("pkg", "codec", "package name")
	flag.Parse()

	src, err := generate(*pkg, *maxArity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tuplegen:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "tuplegen:", err)
		os.Exit(1)
	}
}
