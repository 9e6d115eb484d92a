package runtime

// DefaultPrefix namespaces every storage key of a contract.
const DefaultPrefix = "test-"

// Dependencies bundles the storage and host API handed to contract code.
type Dependencies struct {
	Storage *Store
	API     *ExternalAPI
}

type depsConfig struct {
	prefix string
}

// Option configures MakeDependencies.
type Option func(*depsConfig)

// WithPrefix replaces the storage key prefix.
func WithPrefix(prefix string) Option {
	return func(c *depsConfig) {
		c.prefix = prefix
	}
}

// MakeDependencies builds the dependencies of one invocation.
func MakeDependencies(opts ...Option) Dependencies {
	cfg := depsConfig{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Dependencies{
		Storage: &Store{prefix: []byte(cfg.prefix)},
		API:     &ExternalAPI{},
	}
}
