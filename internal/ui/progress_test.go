package ui

import (
	"strings"
	"testing"

	"hintrun/internal/lint"
)

func TestApplyEvent(t *testing.T) {
	m := NewProgressModel("lint", []string{"a.js", "b.js"}, nil).(*progressModel)

	m.applyEvent(lint.Event{File: "a.js", Stage: lint.StageLint, Status: lint.StatusWorking})
	if m.items[0].status != "linting" {
		t.Errorf("status = %q, want linting", m.items[0].status)
	}
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent = %v, want 0.25", got)
	}

	m.applyEvent(lint.Event{File: "a.js", Stage: lint.StageLint, Status: lint.StatusDone, Issues: 3})
	m.applyEvent(lint.Event{File: "b.js", Stage: lint.StageRead, Status: lint.StatusSkipped})
	m.applyEvent(lint.Event{File: "unknown.js", Stage: lint.StageLint, Status: lint.StatusDone, Issues: 7})

	if m.finished() != 2 || m.issues != 3 {
		t.Errorf("finished=%d issues=%d", m.finished(), m.issues)
	}
	if m.items[1].status != "skipped" {
		t.Errorf("status = %q, want skipped", m.items[1].status)
	}
	if got := m.percent(); got != 1.0 {
		t.Errorf("percent = %v, want 1", got)
	}
}

func TestViewListsFiles(t *testing.T) {
	m := NewProgressModel("lint", []string{"src/app.js"}, nil).(*progressModel)
	m.applyEvent(lint.Event{File: "src/app.js", Stage: lint.StageLint, Status: lint.StatusDone, Issues: 2})
	m.done = true

	view := m.View()
	if !strings.Contains(view, "src/app.js") || !strings.Contains(view, "done: lint (1/1 files, 2 issues)") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/very/long/path.js", 10); got != "interna..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
