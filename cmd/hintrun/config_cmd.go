package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hintrun/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [flags] [file]",
	Short: "Show the JSHint configuration that applies to a file",
	Long: `Config prints the merged options and globals hintrun would pass to JSHint
for [file] (default: the working directory) as JSON. With --which only the
discovered config file is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().Bool("which", false, "print only the config file discovery picks")
	configCmd.Flags().StringArrayP("option", "O", nil, "inline option override key:value (repeatable)")
}

type resolvedConfig struct {
	Sources []string       `json:"sources"`
	Options config.Options `json:"options"`
	Globals config.Globals `json:"globals"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	which, err := cmd.Flags().GetBool("which")
	if err != nil {
		return fmt.Errorf("failed to get which flag: %w", err)
	}
	rawOverrides, err := cmd.Flags().GetStringArray("option")
	if err != nil {
		return fmt.Errorf("failed to get option flag: %w", err)
	}
	overrides, err := parseOverrides(rawOverrides)
	if err != nil {
		return err
	}

	anchor := "."
	if len(args) == 1 {
		anchor = args[0]
	}
	resolver := env.newResolver()
	out := cmd.OutOrStdout()

	if which {
		path, ok, err := resolver.Which(anchor)
		if err != nil {
			return err
		}
		if !ok {
			env.logger.Info("no config file found", slog.String("anchor", anchor))
			return nil
		}
		fmt.Fprintln(out, path)
		return nil
	}

	cfg := resolver.Resolve(anchor)
	cfg.Merge(overrides)
	payload := resolvedConfig{
		Sources: cfg.Sources,
		Options: cfg.Options,
		Globals: cfg.Globals,
	}
	if payload.Sources == nil {
		payload.Sources = []string{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
