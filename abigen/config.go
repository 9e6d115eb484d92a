package abigen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ConfigFile is the per-package configuration file read by LoadConfig.
const ConfigFile = "cdkgen.yaml"

var validate = validator.New()

// Config controls one generator run.
type Config struct {
	// Dir is the contract package directory.
	Dir string `yaml:"dir" validate:"required"`

	// GoOutput is the dispatcher file, relative to Dir.
	GoOutput string `yaml:"go_output" validate:"required,endswith=.go"`

	// WasmOutput is the wasip1 export file, relative to Dir.
	WasmOutput string `yaml:"wasm_output" validate:"required,endswith=.go,nefield=GoOutput"`

	// Manifest is the ABI table file, relative to Dir.
	Manifest string `yaml:"manifest" validate:"required"`

	// Format selects the manifest encoding.
	Format string `yaml:"format" validate:"oneof=json yaml"`

	// Check compares the generated files with the ones on disk instead
	// of writing them.
	Check bool `yaml:"check"`
}

// DefaultConfig returns the configuration used when no cdkgen.yaml exists.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:        dir,
		GoOutput:   "zz_abi_gen.go",
		WasmOutput: "zz_abi_wasip1_gen.go",
		Manifest:   "abi.json",
		Format:     FormatJSON,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	return nil
}

// LoadConfig reads dir/cdkgen.yaml over the defaults. A missing file is
// not an error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig(dir)
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	cfg.Dir = dir
	return cfg, cfg.Validate()
}
