// Package engine talks to the external JavaScript lint engine.
//
// The engine is a black box that takes source text, options and globals and
// returns a list of diagnostics. NodeEngine runs JSHint in a node subprocess;
// Func adapts a plain function for tests and embedding.
package engine

import (
	"context"

	"hintrun/internal/config"
	"hintrun/internal/diag"
)

// Request is one engine invocation.
type Request struct {
	Source  string
	Options config.Options
	Globals config.Globals
}

// Result is the engine's diagnostic list, in engine order. It may contain the
// nil "too many errors" sentinel.
type Result struct {
	Diagnostics diag.List
}

// Engine lints one piece of source text.
type Engine interface {
	Lint(ctx context.Context, req Request) (*Result, error)
}

// Func adapts a function to the Engine interface.
type Func func(ctx context.Context, req Request) (*Result, error)

// Lint calls f.
func (f Func) Lint(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}
