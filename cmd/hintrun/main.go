package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hintrun/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hintrun",
	Short: "Config-aware JSHint runner",
	Long: `hintrun resolves .jshintrc configuration for a JavaScript file (or the
scripts embedded in an HTML page), runs JSHint through node and prints the
diagnostics sorted by position.`,
	SilenceUsage: true,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details, engine faults included")
	rootCmd.PersistentFlags().String("settings", "", "path to hintrun.toml (default: searched upward from the working directory)")
}

// main executes the root command; any returned error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
