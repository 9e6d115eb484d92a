package hostfuncs

import (
	"context"
	"fmt"
	"sort"
)

// Registry is an immutable collection of host imports.
// Once created via NewRegistry, imports cannot be added or removed.
// This ensures thread safety and lock-free lookups during execution.
type Registry struct {
	imports map[string]Import
	names   []string // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	imports    map[string]Import
	middleware []Middleware
	errors     []error
}

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any import name is registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware(), TrapMiddleware()),
//	    WithBundle(AllBundles()),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		imports: make(map[string]Import),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0] // Return first error
	}

	names := make([]string, 0, len(b.imports))
	for name := range b.imports {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware chain to all imports (FIFO order)
	wrapped := make(map[string]Import, len(b.imports))
	for name, imp := range b.imports {
		fn := imp.Func
		// Apply middleware in reverse order so first middleware wraps outermost
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](name, fn)
		}
		imp.Func = fn
		wrapped[name] = imp
	}

	return &Registry{
		imports: wrapped,
		names:   names,
	}, nil
}

// DefaultRegistry returns a registry holding every env import behind panic
// recovery and trap labelling.
func DefaultRegistry(mw ...Middleware) *Registry {
	opts := []RegistryOption{
		WithMiddleware(PanicRecoveryMiddleware(), TrapMiddleware()),
		WithMiddleware(mw...),
		WithBundle(AllBundles()),
	}
	reg, err := NewRegistry(opts...)
	if err != nil {
		// The built-in bundles never collide.
		panic(err)
	}
	return reg
}

// Invoke dispatches an import by name.
func (r *Registry) Invoke(ctx context.Context, name string, call *Call, stack []uint64) error {
	imp, ok := r.imports[name]
	if !ok {
		return &TrapError{Import: name, Err: ErrUnknownImport}
	}
	if len(stack) < imp.StackSize() {
		return &TrapError{Import: name, Err: fmt.Errorf("stack holds %d values, need %d", len(stack), imp.StackSize())}
	}
	return imp.Func(ctx, call, stack)
}

// Lookup returns the import registered under name.
func (r *Registry) Lookup(name string) (Import, bool) {
	imp, ok := r.imports[name]
	return imp, ok
}

// Has returns true if an import with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.imports[name]
	return ok
}

// Names returns a sorted list of all registered import names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Imports returns every import in name order.
func (r *Registry) Imports() []Import {
	result := make([]Import, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.imports[name])
	}
	return result
}

// addImport registers an import under its name.
// Returns an error if the name is already registered.
func (b *registryBuilder) addImport(imp Import) error {
	if imp.Name == "" {
		return fmt.Errorf("import name cannot be empty")
	}
	if imp.Func == nil {
		return fmt.Errorf("import %q has no implementation", imp.Name)
	}
	if _, exists := b.imports[imp.Name]; exists {
		return fmt.Errorf("duplicate import name: %q", imp.Name)
	}
	b.imports[imp.Name] = imp
	return nil
}

// WithImport registers a single import.
func WithImport(imp Import) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addImport(imp); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithBundle registers every import of a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, imp := range bundle.Imports() {
			if err := b.addImport(imp); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
