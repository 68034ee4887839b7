package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hintrun/internal/config"
	"hintrun/internal/settings"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter .jshintrc",
	Long: `Initialize a directory for linting by creating a commented .jshintrc.
If [path] is omitted, the current directory is used; a missing directory is
created. With --settings-file a hintrun.toml is written next to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing .jshintrc")
	initCmd.Flags().Bool("settings-file", false, "also write a hintrun.toml with the defaults")
}

// runInit creates .jshintrc (and optionally hintrun.toml) in the target directory.
// It refuses to overwrite an existing .jshintrc unless --force is given; an
// existing hintrun.toml is always kept.
func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	withSettings, err := cmd.Flags().GetBool("settings-file")
	if err != nil {
		return fmt.Errorf("failed to get settings-file flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	return initDir(cmd.OutOrStdout(), target, force, withSettings)
}

func initDir(out io.Writer, target string, force, withSettings bool) error {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	rcPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(rcPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", rcPath)
	}
	if err := os.WriteFile(rcPath, []byte(defaultJSHintRC), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(out, "Initialized JSHint config in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", config.FileName)

	if !withSettings {
		return nil
	}
	settingsPath := filepath.Join(target, settings.FileName)
	if _, err := os.Stat(settingsPath); err == nil {
		fmt.Fprintf(out, "  - %s (existing)\n", settings.FileName)
		return nil
	}
	if err := os.WriteFile(settingsPath, []byte(defaultSettingsTOML), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", settings.FileName, err)
	}
	fmt.Fprintf(out, "  - %s\n", settings.FileName)
	return nil
}

// defaultJSHintRC is a commented starter config; comments are stripped on load.
const defaultJSHintRC = `{
  // Enforcing
  "bitwise": true,
  "curly": true,
  "eqeqeq": true,
  "undef": true,
  "unused": true,

  // Environments
  "browser": true,
  "node": false,

  // Names defined elsewhere; false means read-only
  "globals": {
    "console": false
  }
}
`

const defaultSettingsTOML = `# hintrun settings
[engine]
# node = "/usr/local/bin/node"
# module_dirs = ["node_modules"]
timeout = "30s"

[resolve]
# plugin_dir = "~/.config/hintrun"
home = true

[output]
format = "plain"
color = "auto"
`
