package lint

import "time"

// Stage describes a step of a lint run.
type Stage string

const (
	// StageRead loads the source file.
	StageRead Stage = "read"
	// StageResolve discovers and merges config files.
	StageResolve Stage = "resolve"
	// StageLint runs the engine.
	StageLint Stage = "lint"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusSkipped indicates the file produced no output (unreadable, engine fault).
	StatusSkipped Status = "skipped"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Issues  int
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use when passed to LintFiles.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
