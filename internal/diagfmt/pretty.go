package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hintrun/internal/diag"
)

type palette struct {
	path    *color.Color
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	gutter  *color.Color
	caret   *color.Color
	summary *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		summary: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.gutter, p.caret, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevInfo:
		return p.info
	}
	return p.warn
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <severity> <code>: <message>
// затем строку исходника с кареткой под колонкой, если есть файл.
// В конце печатается сводка по всем файлам.
func Pretty(w io.Writer, reports []FileReport, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	pal := newPalette(opts.Color)
	printed := 0
	var errs, warns int

	for _, r := range reports {
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		e, wn, _ := r.Diagnostics.Counts()
		errs += e
		warns += wn

		for _, d := range r.Diagnostics {
			if opts.Max > 0 && printed >= opts.Max {
				break
			}
			if d == nil {
				fmt.Fprintf(bw, "%s: %s\n", pal.path.Sprint(path), pal.err.Sprint(StopMessage))
				break
			}
			if !d.HasMessage() {
				continue
			}
			printed++

			sev := d.Severity()
			fmt.Fprintf(bw, "%s:%d:%d: %s", pal.path.Sprint(path), d.Line, d.Character, pal.severity(sev).Sprint(sev.String()))
			if d.Code != "" {
				fmt.Fprintf(bw, " %s", d.Code)
			}
			fmt.Fprintf(bw, ": %s\n", d.Message())

			if opts.Context {
				writeContext(bw, r, d, opts.Width, pal)
			}
		}
	}

	if errs+warns > 0 {
		fmt.Fprintln(bw, pal.summary.Sprint(summaryLine(errs, warns)))
	}
	return bw.Flush()
}

// writeContext prints the diagnostic's source line and a caret under its column.
// The column is converted to display cells so wide runes and tabs line up.
func writeContext(w io.Writer, r FileReport, d *diag.Diagnostic, width int, pal palette) {
	line := d.Evidence
	if r.File != nil && d.Line > 0 {
		if n, err := safecast.Conv[uint32](d.Line); err == nil {
			if text := r.File.GetLine(n); text != "" {
				line = text
			}
		}
	}
	if strings.TrimSpace(line) == "" {
		return
	}
	line = expandTabs(line)

	gutter := fmt.Sprintf("%4d | ", d.Line)
	fmt.Fprintf(w, "%s%s\n", pal.gutter.Sprint(gutter), truncate(line, width))

	if d.Character <= 0 {
		return
	}
	runes := []rune(line)
	col := min(d.Character-1, len(runes))
	pad := runewidth.StringWidth(string(runes[:col]))
	if width > 0 && pad >= width {
		return
	}
	fmt.Fprintf(w, "%s%s%s\n", pal.gutter.Sprint(strings.Repeat(" ", len(gutter)-2)+"| "), strings.Repeat(" ", pad), pal.caret.Sprint("^"))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func summaryLine(errs, warns int) string {
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
