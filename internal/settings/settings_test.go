package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `
[engine]
node = "node"
module_dirs = ["vendor/node_modules", "/opt/lint/node_modules"]
timeout = "5s"
jobs = 2

[resolve]
plugin_dir = "defaults"
home = false

[output]
format = "marker"
color = "never"
max_diagnostics = 50
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Engine.Node != "node" {
		t.Errorf("bare command rewritten: %q", s.Engine.Node)
	}
	if s.Engine.ModuleDirs[0] != filepath.Join(dir, "vendor", "node_modules") || s.Engine.ModuleDirs[1] != "/opt/lint/node_modules" {
		t.Errorf("module dirs = %v", s.Engine.ModuleDirs)
	}
	if s.Engine.Timeout != 5*time.Second || s.Engine.Jobs != 2 {
		t.Errorf("engine = %+v", s.Engine)
	}
	if s.Resolve.PluginDir != "defaults" {
		t.Errorf("plugin dir = %q", s.Resolve.PluginDir)
	}
	if s.HomeEnabled() {
		t.Error("home = false not honoured")
	}
	if s.Output.Format != "marker" || s.Output.MaxDiagnostics != 50 {
		t.Errorf("output = %+v", s.Output)
	}
	if s.Path != path {
		t.Errorf("path = %q", s.Path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "[engine]\nnod = \"x\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "engine.nod") {
		t.Errorf("err = %v, want unknown key engine.nod", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "[engine\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Errorf("err = %v", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeSettings(t, root, "")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(deep)
	if err != nil || !ok || got != path {
		t.Errorf("Find = %q, %v, %v; want %q", got, ok, err, path)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	s, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if s.Path != "" || !s.HomeEnabled() {
		t.Errorf("defaults = %+v", s)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/lint", "/base"); got != filepath.Join(home, "lint") {
		t.Errorf("expandPath(~/lint) = %q", got)
	}
	if got := expandPath("rel/dir", "/base"); got != filepath.Join("/base", "rel", "dir") {
		t.Errorf("expandPath(rel/dir) = %q", got)
	}
}
