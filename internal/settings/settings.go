// Package settings loads hintrun.toml, the tool's own settings file.
// Linter options never live here; they come from .jshintrc files.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the working directory upward.
const FileName = "hintrun.toml"

// Settings mirrors hintrun.toml.
type Settings struct {
	Engine  EngineSettings  `toml:"engine"`
	Resolve ResolveSettings `toml:"resolve"`
	Output  OutputSettings  `toml:"output"`

	// Path is the file the settings were read from; empty for defaults.
	Path string `toml:"-"`
}

type EngineSettings struct {
	Node       string        `toml:"node"`
	Module     string        `toml:"module"`
	ModuleDirs []string      `toml:"module_dirs"`
	Timeout    time.Duration `toml:"timeout"`
	Jobs       int           `toml:"jobs"`
}

type ResolveSettings struct {
	PluginDir string `toml:"plugin_dir"`
	// Home enables the home directory fallback; nil means enabled.
	Home *bool `toml:"home"`
}

type OutputSettings struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	PathMode       string `toml:"path_mode"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// HomeEnabled reports whether the home directory fallback is on.
func (s *Settings) HomeEnabled() bool {
	return s.Resolve.Home == nil || *s.Resolve.Home
}

// Find walks up from startDir looking for hintrun.toml, then tries the user
// config directory.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(cfgDir, "hintrun", FileName)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// Discover finds and loads the settings for startDir. Missing files yield
// zero Settings, not an error.
func Discover(startDir string) (*Settings, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Settings{}, nil
	}
	return Load(path)
}

// Load reads and validates one settings file.
func Load(path string) (*Settings, error) {
	var s Settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if s.Engine.Timeout < 0 {
		return nil, fmt.Errorf("%s: [engine].timeout must not be negative", path)
	}
	if s.Engine.Jobs < 0 {
		return nil, fmt.Errorf("%s: [engine].jobs must not be negative", path)
	}

	base := filepath.Dir(path)
	s.Engine.Node = expandPath(s.Engine.Node, base)
	for i, d := range s.Engine.ModuleDirs {
		s.Engine.ModuleDirs[i] = expandPath(d, base)
	}
	s.Resolve.PluginDir = expandPath(s.Resolve.PluginDir, base)
	s.Path = path
	return &s, nil
}

// expandPath resolves "~/" against the home directory and relative paths
// against the settings file's directory. Bare command names stay as they are.
func expandPath(p, base string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
		return p
	}
	if filepath.IsAbs(p) || !strings.ContainsAny(p, `/\`) {
		return p
	}
	return filepath.Join(base, filepath.FromSlash(p))
}
