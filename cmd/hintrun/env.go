package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hintrun/internal/config"
	"hintrun/internal/engine"
	"hintrun/internal/settings"
)

// cliEnv is what every command needs besides its own flags.
type cliEnv struct {
	settings *settings.Settings
	logger   *slog.Logger
	color    bool
}

func loadEnv(cmd *cobra.Command) (*cliEnv, error) {
	flags := cmd.Root().PersistentFlags()

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if quiet && verbose {
		return nil, fmt.Errorf("quiet and verbose flags cannot be used together")
	}
	settingsPath, err := flags.GetString("settings")
	if err != nil {
		return nil, fmt.Errorf("failed to get settings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}

	var s *settings.Settings
	if settingsPath != "" {
		s, err = settings.Load(settingsPath)
	} else {
		s, err = settings.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if colorFlag == "" {
		colorFlag = s.Output.Color
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), quiet, verbose)
	if s.Path != "" {
		logger.Debug("settings loaded", slog.String("path", s.Path))
	}
	return &cliEnv{
		settings: s,
		logger:   logger,
		color:    useColor(mode, os.Stdout),
	}, nil
}

func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func useColor(mode colorMode, f *os.File) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(f)
	}
}

// newResolver builds the config resolver from settings.
func (e *cliEnv) newResolver() *config.Resolver {
	r := config.NewResolver(e.settings.Resolve.PluginDir)
	if !e.settings.HomeEnabled() {
		r.HomeDir = ""
	}
	r.Logger = e.logger
	return r
}

// newEngine builds the node engine from settings; a non-empty node overrides them.
func (e *cliEnv) newEngine(node string) *engine.NodeEngine {
	eng := engine.NewNodeEngine()
	eng.Logger = e.logger
	es := e.settings.Engine
	if es.Node != "" {
		eng.NodePath = es.Node
	}
	if node != "" {
		eng.NodePath = node
	}
	if es.Module != "" {
		eng.Module = es.Module
	}
	if es.Timeout > 0 {
		eng.Timeout = es.Timeout
	}
	eng.ModuleDirs = es.ModuleDirs
	return eng
}
