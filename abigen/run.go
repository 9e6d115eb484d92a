package abigen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrStale is returned by Run in check mode when a generated file differs
// from the file on disk.
var ErrStale = errors.New("generated file is out of date")

// Result reports the files a run produced.
type Result struct {
	Package *Package
	Files   []string
}

// Run parses cfg.Dir, generates its ABI files and writes them. Nothing is
// written when parsing or generation fails.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pkg, err := ParseDir(cfg.Dir)
	if err != nil {
		return nil, err
	}
	out, err := Generate(pkg, cfg.Format)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{cfg.GoOutput, out.Dispatch},
		{cfg.WasmOutput, out.Exports},
		{cfg.Manifest, out.Manifest},
	}

	res := &Result{Package: pkg}
	for _, f := range files {
		path := filepath.Join(cfg.Dir, f.name)
		if cfg.Check {
			existing, err := os.ReadFile(path)
			if err != nil || !bytes.Equal(existing, f.data) {
				return nil, fmt.Errorf("%s: %w", path, ErrStale)
			}
		}
		res.Files = append(res.Files, path)
	}
	if cfg.Check {
		return res, nil
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(cfg.Dir, f.name), f.data, 0o644); err != nil {
			return nil, err
		}
	}
	return res, nil
}
