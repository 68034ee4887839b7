package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"hintrun/internal/config"
)

func TestDecodeOutput(t *testing.T) {
	out := []byte(`{"errors":[
		{"line":2,"character":5,"code":"W033","raw":"Missing semicolon.","reason":"Missing semicolon."},
		{"line":9,"character":1,"code":"W117","raw":"'{a}' is not defined.","a":"foo"},
		null
	]}`)
	res, err := decodeOutput("node", out)
	if err != nil {
		t.Fatalf("decodeOutput: %v", err)
	}
	if len(res.Diagnostics) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(res.Diagnostics))
	}
	if res.Diagnostics[2] != nil {
		t.Error("null entry should decode to the nil sentinel")
	}
	if got := res.Diagnostics[1].Message(); got != "'foo' is not defined." {
		t.Errorf("Message() = %q", got)
	}
}

func TestDecodeOutputErrors(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want error
	}{
		{"empty", "  ", ErrBadOutput},
		{"garbage", "*** not json", ErrBadOutput},
		{"fault", `{"fault":"Cannot read property 'x' of undefined"}`, ErrEngineFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeOutput("node", []byte(tt.out))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			var ee *EngineError
			if !errors.As(err, &ee) || ee.Command != "node" {
				t.Errorf("expected EngineError with command, got %#v", err)
			}
		})
	}
}

func TestResolveNodeConfiguredMissing(t *testing.T) {
	e := &NodeEngine{NodePath: filepath.Join(t.TempDir(), "no-node")}
	if _, err := e.ResolveNode(); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("ResolveNode err = %v, want ErrNodeNotFound", err)
	}
}

func TestFuncAdapter(t *testing.T) {
	var seen Request
	var eng Engine = Func(func(_ context.Context, req Request) (*Result, error) {
		seen = req
		return &Result{}, nil
	})
	_, err := eng.Lint(context.Background(), Request{Source: "x", Options: config.Options{"curly": true}})
	if err != nil || seen.Source != "x" || seen.Options["curly"] != true {
		t.Errorf("Func did not forward the request: %#v, %v", seen, err)
	}
}

// fakeNode writes an executable that stands in for node and runs body.
func fakeNode(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "node")
	script := "#!/bin/sh\ncat >/dev/null\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNodeEngineWithFakeNode(t *testing.T) {
	node := fakeNode(t, `printf '%s' '{"errors":[{"line":1,"character":3,"code":"W032","raw":"Unnecessary semicolon."}]}'`)
	e := &NodeEngine{NodePath: node, ModuleDirs: []string{"/opt/lint/node_modules"}}

	res, err := e.Lint(context.Background(), Request{Source: "a;;"})
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "W032" {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestNodeEngineFailure(t *testing.T) {
	node := fakeNode(t, `echo "cannot load jshint" >&2; exit 3`)
	e := &NodeEngine{NodePath: node}

	_, err := e.Lint(context.Background(), Request{Source: "a"})
	if !errors.Is(err, ErrEngineFailed) {
		t.Fatalf("err = %v, want ErrEngineFailed", err)
	}
	if !strings.Contains(err.Error(), "cannot load jshint") {
		t.Errorf("stderr not attached: %v", err)
	}
}

func TestNodeEngineTimeout(t *testing.T) {
	node := fakeNode(t, `exec sleep 5`)
	e := &NodeEngine{NodePath: node, Timeout: 50 * time.Millisecond}

	_, err := e.Lint(context.Background(), Request{Source: "a"})
	if !errors.Is(err, ErrEngineTimeout) {
		t.Fatalf("err = %v, want ErrEngineTimeout", err)
	}
}

func TestNodeEngineRealJSHint(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not installed")
	}
	if err := exec.Command("node", "-e", "require('jshint')").Run(); err != nil {
		t.Skip("jshint module not installed")
	}
	e := NewNodeEngine()
	res, err := e.Lint(context.Background(), Request{
		Source:  "var a = 1\n",
		Options: config.Options{"asi": false},
	})
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected a missing semicolon warning")
	}
}
