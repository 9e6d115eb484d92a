// Package abigen turns annotated Go functions into contract entry points.
//
// A function is exported by placing the directive
//
//	//cdk:export
//
// in its doc comment, optionally followed by an ABI name that replaces the
// Go name ("//cdk:export transfer"). For every exported function the
// generator writes:
//
//   - a dispatcher, dispatch_<Func>, that reads the invocation payload,
//     decodes the declared parameters in order and calls the function,
//     returning its ContractResult to the host;
//   - a wasm export named "x" + hex(name), implemented by export_<Func>,
//     that calls the dispatcher (wasip1 builds only);
//   - an entry in the package's ABI manifest, also returned by the
//     generated ABI function.
//
// Package-level names starting with dispatch_ or export_, and the name ABI,
// are reserved for generated code.
//
// Parameter types are restricted to bool, uint32, int32, uint64, int64,
// U128, I128, string and []byte. The result is either absent or a
// ContractResult. Anything else is a CompileError and no file is written.
package abigen
