package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// NewFile builds a File from already normalised bytes.
func NewFile(path string, content []byte, flags FileFlags) *File {
	if IsMarkup(content) {
		flags |= FileMarkup
	}
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Virtual wraps in-memory text, e.g. an editor buffer piped on stdin.
func Virtual(name string, content []byte) *File {
	content, hadCRLF := normalizeCRLF(content)
	flags := FileVirtual
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return NewFile(name, content, flags)
}

// Load reads a file from disk, decodes a UTF-8/UTF-16 BOM and normalises CRLF.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	flags := FileFlags(0)
	content, hadBOM, err := decodeBOM(content)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return NewFile(path, content, flags), nil
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// LineCount returns the number of lines; a trailing newline does not start a new one.
func (f *File) LineCount() int {
	n := len(f.LineIdx)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	return string(f.Content[start:end])
}
