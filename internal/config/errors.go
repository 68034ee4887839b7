package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExtendsCycle is returned when an extends chain refers back to a file already being loaded.
var ErrExtendsCycle = errors.New("extends cycle")

// ParseError reports a config file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse config: %v", e.Err)
	}
	return fmt.Sprintf("%s: parse config: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CycleError carries the chain of files that formed an extends cycle.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrExtendsCycle, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrExtendsCycle }

// OverrideError reports an inline override that is not of the form key:value.
type OverrideError struct {
	Input string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("invalid option override %q (expected key:value)", e.Input)
}
