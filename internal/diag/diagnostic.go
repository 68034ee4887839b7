package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is one entry of the engine's error list.
type Diagnostic struct {
	Line      int    `json:"line"`
	Character int    `json:"character"`
	Code      Code   `json:"code,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Evidence  string `json:"evidence,omitempty"`
	A         string `json:"a,omitempty"`
	B         string `json:"b,omitempty"`
	C         string `json:"c,omitempty"`
	D         string `json:"d,omitempty"`
}

// Severity is derived from the code.
func (d *Diagnostic) Severity() Severity {
	return d.Code.Severity()
}

// HasMessage reports whether there is a template or a reason to print.
func (d *Diagnostic) HasMessage() bool {
	return d != nil && (d.Raw != "" || d.Reason != "")
}

// Message renders Raw by replacing the first {a}, {b}, {c} and {d}.
// Without a template the engine's Reason is returned as is.
func (d *Diagnostic) Message() string {
	if d == nil {
		return ""
	}
	if d.Raw == "" {
		return d.Reason
	}
	msg := d.Raw
	msg = strings.Replace(msg, "{a}", d.A, 1)
	msg = strings.Replace(msg, "{b}", d.B, 1)
	msg = strings.Replace(msg, "{c}", d.C, 1)
	msg = strings.Replace(msg, "{d}", d.D, 1)
	return msg
}

func (d *Diagnostic) String() string {
	if d == nil {
		return "<aborted>"
	}
	return fmt.Sprintf("%d:%d %s %s", d.Line, d.Character, d.Code, d.Message())
}
