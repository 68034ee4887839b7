package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hintrun/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Node      string `json:"node,omitempty"`
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hintrun build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		showHash, err := cmd.Flags().GetBool("hash")
		if err != nil {
			return fmt.Errorf("failed to get hash flag: %w", err)
		}
		showDate, err := cmd.Flags().GetBool("date")
		if err != nil {
			return fmt.Errorf("failed to get date flag: %w", err)
		}
		showFull, err := cmd.Flags().GetBool("full")
		if err != nil {
			return fmt.Errorf("failed to get full flag: %w", err)
		}

		opts := versionOptions{
			format:   strings.ToLower(format),
			showHash: showHash || showFull,
			showDate: showDate || showFull,
		}
		switch opts.format {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		// путь к node полезен при разборе «почему ничего не выводится»
		node := ""
		if showFull {
			if p, err := env.newEngine("").ResolveNode(); err == nil {
				node = p
			} else {
				node = "not found"
			}
		}

		info := collectVersionInfo()
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts, node)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts, node, env.color)
		return nil
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions, node string, color bool) {
	v := info.Version
	if v == strings.TrimSpace(version.Version) {
		v = version.Colored(color)
	}
	fmt.Fprintf(out, "hintrun %s\n", v)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
	if node != "" {
		fmt.Fprintf(out, "node:   %s\n", node)
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions, node string) error {
	payload := versionPayload{
		Tool:    "hintrun",
		Version: info.Version,
		Node:    node,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
