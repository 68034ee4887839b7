package diagfmt

import (
	"encoding/json"
	"io"

	"hintrun/internal/diag"
	"hintrun/internal/source"
)

// FileReport is the input of the multi-file renderers.
type FileReport struct {
	// Path is used when File is nil.
	Path        string
	File        *source.File
	Diagnostics diag.List
}

func (r FileReport) displayPath(mode source.PathMode, baseDir string) string {
	if r.File != nil {
		return r.File.FormatPath(mode, baseDir)
	}
	f := source.File{Path: r.Path}
	return f.FormatPath(mode, baseDir)
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Line      int    `json:"line,omitempty"`
	Character int    `json:"character,omitempty"`
	Severity  string `json:"severity"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Evidence  string `json:"evidence,omitempty"`
}

// FileJSON группирует диагностики одного файла
type FileJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Aborted     bool             `json:"aborted,omitempty"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []FileJSON `json:"files"`
	Count int        `json:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Max ограничивает число диагностик на весь вывод.
func BuildDiagnosticsOutput(reports []FileReport, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(reports))}
	remaining := opts.Max

	for _, r := range reports {
		errs, warns, _ := r.Diagnostics.Counts()
		fj := FileJSON{
			Path:        r.displayPath(opts.PathMode, opts.BaseDir),
			Diagnostics: make([]DiagnosticJSON, 0, len(r.Diagnostics)),
			Aborted:     r.Diagnostics.Aborted(),
			Errors:      errs,
			Warnings:    warns,
		}
		for _, d := range r.Diagnostics {
			if !d.HasMessage() {
				continue
			}
			if opts.Max > 0 && remaining <= 0 {
				break
			}
			dj := DiagnosticJSON{
				Line:      d.Line,
				Character: d.Character,
				Severity:  d.Severity().String(),
				Code:      d.Code.String(),
				Message:   d.Message(),
			}
			if opts.Evidence {
				dj.Evidence = d.Evidence
			}
			fj.Diagnostics = append(fj.Diagnostics, dj)
			out.Count++
			remaining--
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON writes reports as a single JSON document.
func JSON(w io.Writer, reports []FileReport, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(reports, opts)
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(output)
}
