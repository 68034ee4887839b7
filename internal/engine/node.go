package engine

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"hintrun/internal/config"
	"hintrun/internal/diag"
)

//go:embed shim/run.js
var shimScript string

// DefaultTimeout bounds a single engine run when none is configured.
const DefaultTimeout = 30 * time.Second

// DefaultModule is the module name the shim requires when none is configured.
const DefaultModule = "jshint"

// fallbackNodePaths are tried when node is not on PATH; GUI hosts often start
// without the shell's PATH.
var fallbackNodePaths = []string{"/usr/local/bin/node", "/opt/homebrew/bin/node"}

// NodeEngine runs JSHint in a node subprocess.
//
// The request travels as JSON on stdin and the error list comes back as JSON
// on stdout, so nothing is written to disk.
type NodeEngine struct {
	// NodePath is the node executable; empty means look it up.
	NodePath string
	// Module is what the shim passes to require(): a package name or a path to jshint.js.
	Module string
	// ModuleDirs are appended to NODE_PATH.
	ModuleDirs []string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewNodeEngine returns an engine with default module and timeout.
func NewNodeEngine() *NodeEngine {
	return &NodeEngine{
		Module:  DefaultModule,
		Timeout: DefaultTimeout,
	}
}

type shimRequest struct {
	Module  string         `json:"module"`
	Source  string         `json:"source"`
	Options config.Options `json:"options"`
	Globals config.Globals `json:"globals"`
}

type shimResponse struct {
	Errors diag.List `json:"errors"`
	Fault  string    `json:"fault,omitempty"`
}

// Lint runs the engine once.
func (e *NodeEngine) Lint(ctx context.Context, req Request) (*Result, error) {
	node, err := e.ResolveNode()
	if err != nil {
		return nil, err
	}

	module := e.Module
	if module == "" {
		module = DefaultModule
	}
	payload, err := json.Marshal(shimRequest{
		Module:  module,
		Source:  req.Source,
		Options: nonNil(req.Options),
		Globals: req.Globals,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding engine request: %w", err)
	}

	output, err := e.execute(ctx, node, payload)
	if err != nil {
		return nil, err
	}
	return decodeOutput(node, output)
}

// ResolveNode finds the node executable: the configured path, then PATH, then
// well-known install locations.
func (e *NodeEngine) ResolveNode() (string, error) {
	if e.NodePath != "" {
		if !strings.ContainsRune(e.NodePath, filepath.Separator) && !strings.ContainsRune(e.NodePath, '/') {
			path, err := exec.LookPath(e.NodePath)
			if err != nil {
				return "", NewEngineError(e.NodePath, ErrNodeNotFound)
			}
			return path, nil
		}
		if _, err := os.Stat(e.NodePath); err != nil {
			return "", NewEngineError(e.NodePath, ErrNodeNotFound)
		}
		return e.NodePath, nil
	}
	if path, err := exec.LookPath("node"); err == nil {
		return path, nil
	}
	for _, candidate := range fallbackNodePaths {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}
	}
	return "", NewEngineError("node", ErrNodeNotFound)
}

func (e *NodeEngine) execute(ctx context.Context, node string, payload []byte) ([]byte, error) {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, node, "-e", shimScript)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Env = e.environ()
	// grandchildren may keep the pipes open after a kill
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return nil, NewEngineError(node, ErrEngineTimeout).WithOutput(stderr.String())
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, NewEngineError(node, fmt.Errorf("%w: %v", ErrEngineFailed, err)).
			WithOutput(strings.TrimSpace(stderr.String()))
	}

	e.logger().Debug("engine finished",
		slog.String("node", node),
		slog.Duration("duration", time.Since(start)),
		slog.Int("output_bytes", stdout.Len()),
	)
	return stdout.Bytes(), nil
}

func (e *NodeEngine) environ() []string {
	env := os.Environ()
	if len(e.ModuleDirs) == 0 {
		return env
	}
	dirs := append([]string(nil), e.ModuleDirs...)
	if existing := os.Getenv("NODE_PATH"); existing != "" {
		dirs = append([]string{existing}, dirs...)
	}
	return append(env, "NODE_PATH="+strings.Join(dirs, string(filepath.ListSeparator)))
}

func (e *NodeEngine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func decodeOutput(command string, output []byte) (*Result, error) {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil, NewEngineError(command, ErrBadOutput).WithOutput("empty output")
	}
	var resp shimResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, NewEngineError(command, fmt.Errorf("%w: %v", ErrBadOutput, err))
	}
	if resp.Fault != "" {
		return nil, NewEngineError(command, ErrEngineFault).WithOutput(resp.Fault)
	}
	return &Result{Diagnostics: resp.Errors}, nil
}

func nonNil(opts config.Options) config.Options {
	if opts == nil {
		return config.Options{}
	}
	return opts
}
