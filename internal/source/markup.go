package source

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script([^>]*)>(.*?)</script\s*>`)
	scriptTypeRe = regexp.MustCompile(`(?i)\btype\s*=\s*["']?([^"'\s>]+)`)
)

// scriptTypes lists type attributes whose body is JavaScript.
var scriptTypes = map[string]bool{
	"text/javascript":        true,
	"application/javascript": true,
	"application/ecmascript": true,
	"text/ecmascript":        true,
	"module":                 true,
}

// IsMarkup reports whether the first non-whitespace byte is '<'.
func IsMarkup(content []byte) bool {
	trimmed := bytes.TrimLeftFunc(content, unicode.IsSpace)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// ExtractScripts returns the body of every inline JavaScript <script> block.
// Blocks with a non-JavaScript type attribute (templates, JSON data) are skipped.
func ExtractScripts(content []byte) []Chunk {
	matches := scriptRe.FindAllSubmatchIndex(content, -1)
	chunks := make([]Chunk, 0, len(matches))
	for _, m := range matches {
		attrs := content[m[2]:m[3]]
		if !isJavaScript(attrs) {
			continue
		}
		bodyStart, bodyEnd := m[4], m[5]
		chunks = append(chunks, Chunk{
			Text:       string(content[bodyStart:bodyEnd]),
			LineOffset: bytes.Count(content[:bodyStart], []byte{'\n'}),
		})
	}
	return chunks
}

func isJavaScript(attrs []byte) bool {
	m := scriptTypeRe.FindSubmatch(attrs)
	if m == nil {
		return true
	}
	typ, _, _ := strings.Cut(strings.ToLower(string(m[1])), ";")
	return scriptTypes[typ]
}

// Chunks splits f into the pieces the engine should see: the script blocks of
// a markup file, or the whole file otherwise.
func Chunks(f *File) []Chunk {
	if f.Flags&FileMarkup != 0 {
		return ExtractScripts(f.Content)
	}
	return []Chunk{{Text: f.Text()}}
}
