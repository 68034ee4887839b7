package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hintrun/internal/lint"
	"hintrun/internal/ui"
)

type lintOutcome struct {
	results []*lint.Result
	err     error
}

// runLintWithUI runs the batch while a progress model draws on stderr. A broken
// UI is only logged; the lint results are still returned.
func runLintWithUI(ctx context.Context, title string, inv *lint.Invoker, reqs []lint.Request, jobs int, logger *slog.Logger) ([]*lint.Result, error) {
	events := make(chan lint.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	files := make([]string, len(reqs))
	for i, req := range reqs {
		files[i] = req.Path
	}

	go func() {
		invCopy := *inv
		invCopy.Progress = lint.ChannelSink{Ch: events}
		res, err := invCopy.LintFiles(ctx, reqs, jobs)
		outcomeCh <- lintOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	if _, uiErr := program.Run(); uiErr != nil {
		logger.Warn("progress display failed", slog.String("error", uiErr.Error()))
	}
	// модель могла выйти раньше (ctrl+c), дочитываем канал сами
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	return outcome.results, outcome.err
}
