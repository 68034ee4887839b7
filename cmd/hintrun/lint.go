package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hintrun/internal/config"
	"hintrun/internal/diagfmt"
	"hintrun/internal/lint"
	"hintrun/internal/source"
)

const stdinName = "-"

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file|directory|->...",
	Short: "Lint JavaScript files and HTML pages with JSHint",
	Long: `Lint resolves the JSHint configuration for every file, runs the engine and
prints the diagnostics sorted by position. Directories are searched for
.js and .html files; "-" reads a buffer from stdin (use --anchor to tell
hintrun where that buffer lives).

Diagnostics never change the exit status: a run that found problems still
exits 0. A run in which the engine could not start (node or JSHint missing,
timeout) exits 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().String("anchor", "", "start config discovery here instead of at the file")
	lintCmd.Flags().StringArrayP("option", "O", nil, "inline option override key:value (repeatable)")
	lintCmd.Flags().String("format", "", "output format (plain|marker|json|pretty)")
	lintCmd.Flags().Int("jobs", 0, "max parallel engine runs (0=auto)")
	lintCmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics to show per file (0=all)")
	lintCmd.Flags().Bool("timings", false, "print per-file phase timings to stderr")
	lintCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	lintCmd.Flags().String("path-mode", "", "how to print file paths (given|absolute|relative|basename)")
	lintCmd.Flags().String("node", "", "node executable (default: from settings or PATH)")
}

type lintOptions struct {
	anchor    string
	overrides *config.Config
	format    diagfmt.Format
	jobs      int
	max       int
	timings   bool
	ui        uiMode
	pathMode  source.PathMode
	node      string
}

func runLint(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	opts, err := readLintOptions(cmd, env)
	if err != nil {
		return err
	}

	reqs, err := buildRequests(args, opts, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		env.logger.Info("no files to lint")
		return nil
	}

	inv := &lint.Invoker{
		Engine:   env.newEngine(opts.node),
		Resolver: env.newResolver(),
		Logger:   env.logger,
	}

	var results []*lint.Result
	if shouldUseTUI(opts.ui, len(reqs)) {
		results, err = runLintWithUI(cmd.Context(), "hintrun lint", inv, reqs, opts.jobs, env.logger)
	} else {
		results, err = inv.LintFiles(cmd.Context(), reqs, opts.jobs)
	}
	if err != nil {
		return err
	}

	if opts.timings {
		writeTimings(cmd.ErrOrStderr(), results)
	}
	if err := renderResults(cmd.OutOrStdout(), results, opts, env.color); err != nil {
		return err
	}
	return engineFailure(results)
}

// engineFailure reports files the engine never looked at; clean and faulted
// files do not count.
func engineFailure(results []*lint.Result) error {
	failed := 0
	var first error
	for _, r := range results {
		if r == nil || r.Err == nil {
			continue
		}
		if first == nil {
			first = r.Err
		}
		failed++
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d file(s) not linted: %w", lint.ErrEngineUnavailable, failed, len(results), first)
}

func readLintOptions(cmd *cobra.Command, env *cliEnv) (*lintOptions, error) {
	flags := cmd.Flags()
	opts := &lintOptions{}

	var err error
	if opts.anchor, err = flags.GetString("anchor"); err != nil {
		return nil, fmt.Errorf("failed to get anchor flag: %w", err)
	}
	rawOverrides, err := flags.GetStringArray("option")
	if err != nil {
		return nil, fmt.Errorf("failed to get option flag: %w", err)
	}
	if opts.overrides, err = parseOverrides(rawOverrides); err != nil {
		return nil, err
	}

	format, err := flags.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = env.settings.Output.Format
	}
	if format == "" {
		format = string(diagfmt.FormatPlain)
	}
	if opts.format, err = diagfmt.ParseFormat(format); err != nil {
		return nil, err
	}

	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") {
		opts.jobs = env.settings.Engine.Jobs
	}
	if opts.max, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") {
		opts.max = env.settings.Output.MaxDiagnostics
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return nil, err
	}

	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if pathMode == "" {
		pathMode = env.settings.Output.PathMode
	}
	if opts.pathMode, err = readPathMode(pathMode); err != nil {
		return nil, err
	}

	if opts.node, err = flags.GetString("node"); err != nil {
		return nil, fmt.Errorf("failed to get node flag: %w", err)
	}
	return opts, nil
}

// parseOverrides turns repeated key:value flags into a config layer.
func parseOverrides(raw []string) (*config.Config, error) {
	over := config.New()
	for _, item := range raw {
		key, value, err := config.ParseOverride(item)
		if err != nil {
			return nil, err
		}
		over.Set(key, value)
	}
	return over, nil
}

func readPathMode(value string) (source.PathMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "given":
		return source.PathModeAsGiven, nil
	case "absolute":
		return source.PathModeAbsolute, nil
	case "relative":
		return source.PathModeRelative, nil
	case "basename":
		return source.PathModeBasename, nil
	default:
		return 0, fmt.Errorf("invalid --path-mode value %q (expected given|absolute|relative|basename)", value)
	}
}

// buildRequests expands directories and reads stdin for "-".
func buildRequests(args []string, opts *lintOptions, stdin io.Reader) ([]lint.Request, error) {
	var reqs []lint.Request
	stdinUsed := false
	for _, arg := range args {
		if arg == stdinName {
			if stdinUsed {
				return nil, fmt.Errorf("stdin can only be linted once")
			}
			stdinUsed = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			name := "<stdin>"
			if opts.anchor != "" {
				name = opts.anchor
			}
			reqs = append(reqs, lint.Request{
				Path:      name,
				File:      source.Virtual(name, data),
				Anchor:    opts.anchor,
				Overrides: opts.overrides,
			})
			continue
		}

		st, err := os.Stat(arg)
		if err == nil && st.IsDir() {
			files, err := lint.ListFiles(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to list %q: %w", arg, err)
			}
			for _, f := range files {
				reqs = append(reqs, lint.Request{Path: f, Anchor: opts.anchor, Overrides: opts.overrides})
			}
			continue
		}
		// нечитаемые файлы молча пропускаются при линтинге
		reqs = append(reqs, lint.Request{Path: arg, Anchor: opts.anchor, Overrides: opts.overrides})
	}
	return reqs, nil
}

func renderResults(w io.Writer, results []*lint.Result, opts *lintOptions, color bool) error {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}

	switch opts.format {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, reports(results, opts.max), diagfmt.JSONOpts{
			PathMode: opts.pathMode,
			BaseDir:  baseDir,
			Indent:   true,
			Evidence: true,
		})
	case diagfmt.FormatPretty:
		return diagfmt.Pretty(w, reports(results, opts.max), diagfmt.PrettyOpts{
			Color:    color,
			Context:  true,
			PathMode: opts.pathMode,
			BaseDir:  baseDir,
		})
	}

	printable := 0
	for _, r := range results {
		if r.Printable() {
			printable++
		}
	}
	for _, r := range results {
		if !r.Printable() {
			continue
		}
		if printable > 1 {
			fmt.Fprintln(w, r.File.FormatPath(opts.pathMode, baseDir))
		}
		list := r.Diagnostics.Limit(opts.max)
		if opts.format == diagfmt.FormatMarker {
			err = diagfmt.Marker(w, list)
		} else {
			err = diagfmt.Plain(w, list)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// reports converts printable results; limit caps each file (0 = all).
func reports(results []*lint.Result, limit int) []diagfmt.FileReport {
	out := make([]diagfmt.FileReport, 0, len(results))
	for _, r := range results {
		if r == nil || r.Skipped || r.Stopped {
			continue
		}
		out = append(out, diagfmt.FileReport{
			Path:        r.Path,
			File:        r.File,
			Diagnostics: r.Diagnostics.Limit(limit),
		})
	}
	return out
}

func writeTimings(w io.Writer, results []*lint.Result) {
	for _, r := range results {
		if r == nil || len(r.Timings.Phases) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n%s", filepath.ToSlash(r.Path), r.Timings.String())
	}
}
