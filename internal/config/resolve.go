package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Resolver merges every config file that applies to a source file.
//
// Precedence, lowest first:
//
//	PluginDir/.jshintrc
//	nearest ancestor of the anchor holding .jshintrc (or package.json with jshintConfig)
//	HomeDir/.jshintrc, only when no ancestor matched
//
// Broken files are reported through Logger and contribute nothing.
type Resolver struct {
	PluginDir string
	HomeDir   string
	Logger    *slog.Logger
}

// NewResolver returns a resolver that falls back to the current user's home directory.
func NewResolver(pluginDir string) *Resolver {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &Resolver{PluginDir: pluginDir, HomeDir: home}
}

// Resolve produces the merged config for anchor. It never fails; problems are logged.
func (r *Resolver) Resolve(anchor string) *Config {
	cfg := New()

	if r.PluginDir != "" {
		if p, ok := existingFile(filepath.Join(r.PluginDir, FileName)); ok {
			r.mergeFile(cfg, p)
		}
	}

	path, ok, err := Discover(anchor)
	if err != nil {
		r.logger().Warn("config discovery failed",
			slog.String("anchor", anchor),
			slog.String("error", err.Error()),
		)
	}
	if !ok && r.HomeDir != "" {
		path, ok = existingFile(filepath.Join(r.HomeDir, FileName))
	}
	if ok {
		r.mergeFile(cfg, path)
	}
	return cfg
}

// Which returns the file Resolve would pick from the ancestor walk or the home directory.
func (r *Resolver) Which(anchor string) (string, bool, error) {
	path, ok, err := Discover(anchor)
	if err != nil || ok {
		return path, ok, err
	}
	if r.HomeDir != "" {
		path, ok = existingFile(filepath.Join(r.HomeDir, FileName))
		return path, ok, nil
	}
	return "", false, nil
}

func (r *Resolver) mergeFile(cfg *Config, path string) {
	sub, err := Load(path)
	if err != nil {
		r.logger().Warn("ignoring unreadable config",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger().Debug("config applied",
		slog.String("path", path),
		slog.Int("options", len(sub.Options)),
		slog.Int("globals", len(sub.Globals)),
	)
	cfg.Merge(sub)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Discover walks upward from the anchor's directory and returns the first
// config file found. In a directory holding both, .jshintrc wins over package.json.
// An empty anchor (unsaved buffer) skips the walk.
func Discover(anchor string) (string, bool, error) {
	if anchor == "" {
		return "", false, nil
	}
	abs, err := filepath.Abs(anchor)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve anchor: %w", err)
	}
	dir := abs
	if st, err := os.Stat(abs); err != nil || !st.IsDir() {
		dir = filepath.Dir(abs)
	}
	for {
		path, ok, err := findInDir(dir)
		if err != nil || ok {
			return path, ok, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func findInDir(dir string) (string, bool, error) {
	candidate := filepath.Join(dir, FileName)
	if st, err := os.Stat(candidate); err == nil {
		if !st.IsDir() {
			return candidate, true, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
	}

	pkg := filepath.Join(dir, PackageFileName)
	// #nosec G304 -- fixed file name inside a walked directory
	data, err := os.ReadFile(pkg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", pkg, err)
	}
	if HasPackageConfig(data) {
		return pkg, true, nil
	}
	return "", false, nil
}

func existingFile(path string) (string, bool) {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return "", false
	}
	return path, true
}
