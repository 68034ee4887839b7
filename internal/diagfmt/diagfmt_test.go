package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hintrun/internal/diag"
	"hintrun/internal/source"
)

func sampleList() diag.List {
	return diag.List{
		{Line: 1, Character: 5, Code: "W033", Raw: "Missing semicolon."},
		{Line: 2, Character: 1, Code: "W117", Raw: "'{a}' is not defined.", A: "foo"},
		{Line: 3, Character: 1},
		nil,
		{Line: 9, Character: 9, Raw: "after the sentinel"},
	}
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Plain(&buf, sampleList()); err != nil {
		t.Fatalf("Plain: %v", err)
	}
	want := "1 5 Missing semicolon.\n" +
		"2 1 'foo' is not defined.\n" +
		"Stopping, unable to continue.\n"
	if buf.String() != want {
		t.Errorf("Plain output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPlainEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Plain(&buf, nil); err != nil {
		t.Fatalf("Plain: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestMarker(t *testing.T) {
	var buf bytes.Buffer
	if err := Marker(&buf, sampleList()[:2]); err != nil {
		t.Fatalf("Marker: %v", err)
	}
	want := MarkerHeader + "\n" +
		"1 :: 5 :: Missing semicolon.\n" +
		"2 :: 1 :: 'foo' is not defined.\n"
	if buf.String() != want {
		t.Errorf("Marker output:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := Marker(&buf, diag.List{}); err != nil || buf.Len() != 0 {
		t.Errorf("empty list should print nothing, got %q (%v)", buf.String(), err)
	}
}

func TestJSON(t *testing.T) {
	reports := []FileReport{
		{Path: "src/a.js", Diagnostics: sampleList()},
		{Path: "b.js"},
	}
	var buf bytes.Buffer
	if err := JSON(&buf, reports, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Files) != 2 {
		t.Fatalf("count=%d files=%d", out.Count, len(out.Files))
	}
	first := out.Files[0]
	if first.Path != "src/a.js" || !first.Aborted || first.Warnings != 4 {
		t.Errorf("file = %+v", first)
	}
	if first.Diagnostics[0].Severity != "warning" || first.Diagnostics[0].Code != "W033" {
		t.Errorf("diagnostic = %+v", first.Diagnostics[0])
	}
	if out.Files[1].Diagnostics == nil {
		t.Error("clean files should serialise an empty array")
	}
}

func TestJSONPathModes(t *testing.T) {
	f := source.Virtual("/home/user/project/src/test.js", []byte("x\n"))
	reports := []FileReport{{File: f, Diagnostics: diag.List{{Line: 1, Character: 1, Raw: "m"}}}}

	tests := []struct {
		name string
		mode source.PathMode
		want string
	}{
		{"as given", source.PathModeAsGiven, "/home/user/project/src/test.js"},
		{"relative", source.PathModeRelative, "src/test.js"},
		{"basename", source.PathModeBasename, "test.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildDiagnosticsOutput(reports, JSONOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			if got := out.Files[0].Path; got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyContextAndCaret(t *testing.T) {
	f := source.Virtual("a.js", []byte("var x = 1\nvar  世 = y\n"))
	reports := []FileReport{{
		File: f,
		Diagnostics: diag.List{
			{Line: 2, Character: 10, Code: "W117", Raw: "'{a}' is not defined.", A: "y"},
			{Line: 1, Character: 10, Code: "E001", Raw: "boom"},
		},
	}}
	var buf bytes.Buffer
	if err := Pretty(&buf, reports, PrettyOpts{Context: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "a.js:2:10: warning W117: 'y' is not defined." {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "   2 | var  世 = y" {
		t.Errorf("context = %q", lines[1])
	}
	// "var  世 = " is 10 display cells wide: the wide rune counts twice.
	if lines[2] != "     | "+strings.Repeat(" ", 10)+"^" {
		t.Errorf("caret = %q", lines[2])
	}
	if !strings.Contains(buf.String(), "1 error, 1 warning") {
		t.Errorf("missing summary:\n%s", buf.String())
	}
}

func TestPrettyMaxAndSentinel(t *testing.T) {
	reports := []FileReport{{Path: "a.js", Diagnostics: sampleList()}}

	var buf bytes.Buffer
	if err := Pretty(&buf, reports, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "a.js: "+StopMessage) {
		t.Errorf("sentinel missing:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "after the sentinel") {
		t.Errorf("output continued past the sentinel:\n%s", buf.String())
	}

	buf.Reset()
	if err := Pretty(&buf, reports, PrettyOpts{Max: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "W117") {
		t.Errorf("Max not applied:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Errorf("unlimited truncate = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("expected error for unknown format")
	}
}
