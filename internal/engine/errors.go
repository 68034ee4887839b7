package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when no node executable can be located.
	ErrNodeNotFound = errors.New("node executable not found")

	// ErrEngineFailed is returned when the engine process exits without usable output.
	ErrEngineFailed = errors.New("engine failed")

	// ErrEngineTimeout is returned when the engine exceeds its time budget.
	ErrEngineTimeout = errors.New("engine timeout")

	// ErrEngineFault is returned when the engine raised an exception while linting.
	ErrEngineFault = errors.New("engine fault")

	// ErrBadOutput is returned when the engine output cannot be decoded.
	ErrBadOutput = errors.New("malformed engine output")
)

// EngineError adds the engine command and its stderr to an engine failure.
type EngineError struct {
	Command string
	Err     error
	Output  string
}

func (e *EngineError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates an EngineError for command.
func NewEngineError(command string, err error) *EngineError {
	return &EngineError{Command: command, Err: err}
}

// WithOutput attaches captured process output.
func (e *EngineError) WithOutput(output string) *EngineError {
	e.Output = output
	return e
}
