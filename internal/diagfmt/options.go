package diagfmt

import (
	"fmt"
	"strings"

	"hintrun/internal/source"
)

// Format selects an output renderer.
type Format string

const (
	// FormatPlain prints "<line> <character> <message>".
	FormatPlain Format = "plain"
	// FormatMarker is the editor plugin format with the output header.
	FormatMarker Format = "marker"
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
)

// Formats lists every known format in help order.
var Formats = []Format{FormatPlain, FormatMarker, FormatJSON, FormatPretty}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, marker, json or pretty)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  bool // печатать строку исходника с кареткой
	PathMode source.PathMode
	BaseDir  string
	Width    int // максимальная ширина строки контекста, 0 - не ограничено
	Max      int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode source.PathMode
	BaseDir  string
	Max      int // обрезка вывода
	Indent   bool
	Evidence bool
}
