package host

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/c123chain/cdk-go/manifest"
)

// wasiModule is linked by every Go wasip1 binary.
const wasiModule = "wasi_snapshot_preview1"

// checkImports verifies that every function the module imports from the
// host module exists in the registry with a matching signature.
func (e *Executor) checkImports(compiled wazero.CompiledModule) error {
	var problems []string
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if module == wasiModule {
			continue
		}
		if module != e.moduleName {
			problems = append(problems, fmt.Sprintf("%s.%s: unknown module", module, name))
			continue
		}
		imp, ok := e.registry.Lookup(name)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s.%s: unknown import", module, name))
			continue
		}
		if !allI32(def.ParamTypes(), imp.Params) || !allI32(def.ResultTypes(), imp.Results) {
			problems = append(problems, fmt.Sprintf("%s.%s: signature mismatch", module, name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("contract imports rejected:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func allI32(types []api.ValueType, n int) bool {
	if len(types) != n {
		return false
	}
	for _, t := range types {
		if t != api.ValueTypeI32 {
			return false
		}
	}
	return true
}

// checkExports verifies that every manifest entry is exported as a
// function taking no parameters and returning nothing, and that the module
// exports its allocator.
func checkExports(compiled wazero.CompiledModule, m *manifest.Manifest) error {
	exports := compiled.ExportedFunctions()

	var problems []string
	if _, ok := exports[AllocateExport]; !ok {
		problems = append(problems, AllocateExport+": missing")
	}
	if m != nil {
		for _, entry := range m.Entries {
			def, ok := exports[entry.ExportName]
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("%s (%s): missing", entry.ExportName, entry.Function))
			case len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0:
				problems = append(problems, fmt.Sprintf("%s (%s): entry points take no parameters and return nothing", entry.ExportName, entry.Function))
			}
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("contract exports rejected:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
