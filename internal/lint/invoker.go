// Package lint drives one lint run: read the source, resolve its config, call
// the engine for every script chunk and collect the sorted diagnostics.
//
// Failures are soft:
//
//	unreadable source  -> Result.Skipped, nothing printed
//	broken config file -> notice from the resolver, run continues
//	engine fault       -> Result.Stopped, nothing printed
//
// An engine that cannot run at all (node missing, module not loadable, timeout,
// garbage on stdout) is not soft: the result carries it in Result.Err and a
// Warn notice names the command. Only context cancellation is returned as an error.
package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hintrun/internal/config"
	"hintrun/internal/diag"
	"hintrun/internal/engine"
	"hintrun/internal/observ"
	"hintrun/internal/source"
)

// ErrEngineUnavailable marks a run in which the engine could not lint some files.
var ErrEngineUnavailable = errors.New("engine unavailable")

// Request describes one file to lint.
type Request struct {
	// Path is the file to read. Ignored when File is set.
	Path string
	// File is pre-loaded content, e.g. an editor buffer read from stdin.
	File *source.File
	// Anchor is where config discovery starts. Files read from disk default to
	// Path; a buffer (File set) without an Anchor skips the ancestor walk and
	// gets only the plugin and home configs.
	Anchor string
	// Overrides are applied on top of the resolved config.
	Overrides *config.Config
}

// Result is the outcome for one file.
type Result struct {
	Path        string
	File        *source.File
	Config      *config.Config
	Diagnostics diag.List
	// Skipped is set when the source could not be read.
	Skipped bool
	// Stopped is set when the engine faulted or could not run; Diagnostics is empty then.
	Stopped bool
	// Err is the engine failure when the engine could not run. Nil for faults
	// raised while linting.
	Err     error
	Timings observ.Report
}

// Printable reports whether the result has anything for a formatter.
func (r *Result) Printable() bool {
	return r != nil && !r.Skipped && !r.Stopped && len(r.Diagnostics) > 0
}

// Invoker ties a config resolver to an engine.
type Invoker struct {
	Engine   engine.Engine
	Resolver *config.Resolver
	Logger   *slog.Logger
	Progress ProgressSink
}

// Lint runs the engine over req and returns sorted diagnostics.
func (inv *Invoker) Lint(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("lint: ctx must not be nil")
	}
	if inv.Engine == nil {
		return nil, errors.New("lint: no engine configured")
	}
	start := time.Now()
	timer := observ.NewTimer()
	res := &Result{Path: req.Path}
	name := req.Path

	emit(inv.Progress, Event{File: name, Stage: StageRead, Status: StatusWorking})
	phase := timer.Begin(string(StageRead))
	file := req.File
	if file == nil {
		var err error
		file, err = source.Load(req.Path)
		if err != nil {
			timer.End(phase, "failed")
			inv.logger().Debug("source unreadable",
				slog.String("path", req.Path),
				slog.String("error", err.Error()),
			)
			res.Skipped = true
			res.Timings = timer.Report()
			emit(inv.Progress, Event{File: name, Stage: StageRead, Status: StatusSkipped, Elapsed: time.Since(start)})
			return res, nil
		}
	}
	if res.Path == "" {
		res.Path = file.Path
	}
	res.File = file
	chunks := source.Chunks(file)
	timer.End(phase, fmt.Sprintf("%d chunk(s)", len(chunks)))

	emit(inv.Progress, Event{File: name, Stage: StageResolve, Status: StatusWorking})
	phase = timer.Begin(string(StageResolve))
	res.Config = inv.resolve(req)
	timer.End(phase, fmt.Sprintf("%d file(s)", len(res.Config.Sources)))

	emit(inv.Progress, Event{File: name, Stage: StageLint, Status: StatusWorking})
	phase = timer.Begin(string(StageLint))
	list, err := inv.lintChunks(ctx, chunks, res.Config)
	if err != nil {
		timer.End(phase, "stopped")
		res.Timings = timer.Report()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		res.Stopped = true
		if errors.Is(err, engine.ErrEngineFault) {
			inv.logger().Debug("engine stopped",
				slog.String("path", res.Path),
				slog.String("error", err.Error()),
			)
		} else {
			res.Err = err
			inv.warnUnavailable(res.Path, err)
		}
		emit(inv.Progress, Event{File: name, Stage: StageLint, Status: StatusSkipped, Elapsed: time.Since(start)})
		return res, nil
	}
	list.Sort()
	res.Diagnostics = list
	timer.End(phase, fmt.Sprintf("%d diagnostic(s)", len(list)))
	res.Timings = timer.Report()

	emit(inv.Progress, Event{File: name, Stage: StageLint, Status: StatusDone, Issues: len(list), Elapsed: time.Since(start)})
	return res, nil
}

func (inv *Invoker) resolve(req Request) *config.Config {
	anchor := req.Anchor
	if anchor == "" && req.File == nil {
		anchor = req.Path
	}
	var cfg *config.Config
	if inv.Resolver != nil {
		cfg = inv.Resolver.Resolve(anchor)
	} else {
		cfg = config.New()
	}
	cfg.Merge(req.Overrides)
	return cfg
}

// lintChunks calls the engine once per chunk and shifts each chunk's
// diagnostics into file coordinates. The first engine error aborts the file.
func (inv *Invoker) lintChunks(ctx context.Context, chunks []source.Chunk, cfg *config.Config) (diag.List, error) {
	var out diag.List
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := inv.Engine.Lint(ctx, engine.Request{
			Source:  chunk.Text,
			Options: cfg.Options,
			Globals: cfg.Globals,
		})
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, errors.New("engine returned no result")
		}
		r.Diagnostics.Shift(chunk.LineOffset, 0)
		out = append(out, r.Diagnostics...)
	}
	return out, nil
}

func (inv *Invoker) warnUnavailable(path string, err error) {
	attrs := []any{slog.String("path", path)}
	var engErr *engine.EngineError
	if errors.As(err, &engErr) {
		attrs = append(attrs,
			slog.String("command", engErr.Command),
			slog.String("error", engErr.Err.Error()),
		)
		if engErr.Output != "" {
			attrs = append(attrs, slog.String("stderr", engErr.Output))
		}
	} else {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if errors.Is(err, engine.ErrNodeNotFound) {
		attrs = append(attrs, slog.String("hint", "set --node or [engine] node in hintrun.toml"))
	}
	inv.logger().Warn("engine unavailable, file not linted", attrs...)
}

func (inv *Invoker) logger() *slog.Logger {
	if inv.Logger != nil {
		return inv.Logger
	}
	return slog.Default()
}
