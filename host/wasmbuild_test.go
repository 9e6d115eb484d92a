package host_test

import "github.com/c123chain/cdk-go/manifest"

// A minimal wasm binary encoder for host tests. It covers what the test
// contracts need: i32-only function types, function imports, one memory,
// one mutable i32 global and function bodies given as raw instructions.

const (
	opUnreachable = 0x00
	opCall        = 0x10
	opLocalGet    = 0x20
	opLocalTee    = 0x22
	opGlobalGet   = 0x23
	opGlobalSet   = 0x24
	opI32Add      = 0x6a
	opEnd         = 0x0b

	valI32 = 0x7f
)

func uleb(n uint32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			return out
		}
	}
}

// sleb encodes non-negative values that fit the i32.const immediates used
// here.
func sleb(n int32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if (n == 0 && b&0x40 == 0) || (n == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(body)))...)
	return append(out, body...)
}

type funcType struct{ params, results int }

func (t funcType) encode() []byte {
	params := make([][]byte, t.params)
	results := make([][]byte, t.results)
	for i := range params {
		params[i] = []byte{valI32}
	}
	for i := range results {
		results[i] = []byte{valI32}
	}
	out := []byte{0x60}
	out = append(out, vec(params...)...)
	return append(out, vec(results...)...)
}

type wasmImport struct {
	module, name string
	typ          funcType
}

type wasmFunc struct {
	export string
	typ    funcType
	locals int
	code   []byte
}

type wasmModule struct {
	imports []wasmImport
	funcs   []wasmFunc
}

// call returns the call instruction for the named import or function.
func (m *wasmModule) call(name string) []byte {
	for i, imp := range m.imports {
		if imp.name == name {
			return append([]byte{opCall}, uleb(uint32(i))...)
		}
	}
	for i, fn := range m.funcs {
		if fn.export == name {
			return append([]byte{opCall}, uleb(uint32(len(m.imports)+i))...)
		}
	}
	panic("wasm test module: no function " + name)
}

func (m *wasmModule) encode() []byte {
	var types []funcType
	typeIndex := func(t funcType) uint32 {
		for i, have := range types {
			if have == t {
				return uint32(i)
			}
		}
		types = append(types, t)
		return uint32(len(types) - 1)
	}

	var imports, funcDecls, exports, bodies [][]byte
	for _, imp := range m.imports {
		entry := append(wasmName(imp.module), wasmName(imp.name)...)
		entry = append(entry, 0x00)
		imports = append(imports, append(entry, uleb(typeIndex(imp.typ))...))
	}
	for i, fn := range m.funcs {
		funcDecls = append(funcDecls, uleb(typeIndex(fn.typ)))
		export := append(wasmName(fn.export), 0x00)
		exports = append(exports, append(export, uleb(uint32(len(m.imports)+i))...))

		body := []byte{0x00}
		if fn.locals > 0 {
			body = append(vec(append(uleb(uint32(fn.locals)), valI32)), fn.code...)
		} else {
			body = append(body, fn.code...)
		}
		body = append(body, opEnd)
		bodies = append(bodies, append(uleb(uint32(len(body))), body...))
	}
	exports = append(exports, append(wasmName("memory"), 0x02, 0x00))

	encodedTypes := make([][]byte, len(types))
	for i, t := range types {
		encodedTypes[i] = t.encode()
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, vec(encodedTypes...))...)
	out = append(out, section(2, vec(imports...))...)
	out = append(out, section(3, vec(funcDecls...))...)
	out = append(out, section(5, vec([]byte{0x00, 0x01}))...)
	global := append([]byte{valI32, 0x01, 0x41}, sleb(heapBase)...)
	out = append(out, section(6, vec(append(global, opEnd)))...)
	out = append(out, section(7, vec(exports...))...)
	out = append(out, section(10, vec(bodies...))...)
	return out
}

// heapBase is where the bump allocator starts.
const heapBase = 1024

var (
	noArgs   = funcType{}
	oneArg   = funcType{params: 1}
	twoArgs  = funcType{params: 2}
	returns1 = funcType{results: 1}
	unary    = funcType{params: 1, results: 1}
)

// testContract builds a module with a bump allocator and entry points that
// route the invocation payload straight into one import:
//
//	echo  return_contract(get_input())
//	fail  panic_contract(get_input())
//	log   debug_print(get_input())
//	put   write_db(get_input(), get_input region reused as value)
//	trap  unreachable
func testContract(extraImports ...wasmImport) []byte {
	m := &wasmModule{
		imports: append([]wasmImport{
			{"env", "get_input", returns1},
			{"env", "return_contract", oneArg},
			{"env", "panic_contract", oneArg},
			{"env", "debug_print", oneArg},
			{"env", "write_db", twoArgs},
		}, extraImports...),
	}

	allocate := []byte{
		opGlobalGet, 0x00,
		opGlobalGet, 0x00,
		opLocalGet, 0x00,
		opI32Add,
		opGlobalSet, 0x00,
	}
	m.funcs = []wasmFunc{
		{export: "allocate", typ: unary, code: allocate},
	}

	forward := func(export, target string) wasmFunc {
		code := append(m.call("get_input"), m.call(target)...)
		return wasmFunc{export: export, typ: noArgs, code: code}
	}
	m.funcs = append(m.funcs,
		forward(manifest.ExportName("echo"), "return_contract"),
		forward(manifest.ExportName("fail"), "panic_contract"),
		forward(manifest.ExportName("log"), "debug_print"),
	)

	put := append(m.call("get_input"), opLocalTee, 0x00, opLocalGet, 0x00)
	put = append(put, m.call("write_db")...)
	m.funcs = append(m.funcs,
		wasmFunc{export: manifest.ExportName("put"), typ: noArgs, locals: 1, code: put},
		wasmFunc{export: manifest.ExportName("trap"), typ: noArgs, code: []byte{opUnreachable}},
	)

	return m.encode()
}

// testManifest describes testContract.
func testManifest() *manifest.Manifest {
	m := manifest.New("wasmtest")
	add := func(fn string, params ...manifest.Param) {
		if params == nil {
			params = []manifest.Param{}
		}
		m.Entries = append(m.Entries, manifest.Entry{Function: fn, ExportName: manifest.ExportName(fn), Params: params})
	}
	add("echo")
	add("fail")
	add("log", manifest.Param{Name: "line", Type: manifest.TypeString})
	add("put", manifest.Param{Name: "kv", Type: manifest.TypeBytes})
	add("trap")
	return m
}
