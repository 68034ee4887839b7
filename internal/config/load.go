package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Load reads a config file and resolves its extends chain. Bases are applied
// first, so declarations in path win over anything they extend. A package.json
// path is read through its embedded config block.
func Load(path string) (*Config, error) {
	return load(path, nil)
}

func load(path string, chain []string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	if slices.Contains(chain, abs) {
		return nil, &CycleError{Chain: append(slices.Clone(chain), abs)}
	}

	// #nosec G304 -- config paths come from discovery or extends references
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	var (
		entries map[string]any
		extends string
	)
	if filepath.Base(abs) == PackageFileName {
		var ok bool
		entries, extends, ok, err = decodePackageEntries(data)
		if err == nil && !ok {
			err = fmt.Errorf("no %s block", PackageConfigKey)
		}
	} else {
		entries, extends, err = decodeEntries(StripComments(data))
	}
	if err != nil {
		return nil, &ParseError{Path: abs, Err: err}
	}

	cfg := New()
	if extends != "" {
		basePath := extends
		if !filepath.IsAbs(basePath) {
			basePath = filepath.Join(filepath.Dir(abs), basePath)
		}
		base, err := load(basePath, append(chain, abs))
		if err != nil {
			return nil, fmt.Errorf("%s: extends %q: %w", abs, extends, err)
		}
		cfg = base
	}
	cfg.apply(entries)
	cfg.Sources = append(cfg.Sources, abs)
	return cfg, nil
}
