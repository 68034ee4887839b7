package source

import (
	"path/filepath"
	"strings"
)

// PathMode selects how a file path is shown in output.
type PathMode uint8

const (
	// PathModeAsGiven prints the path the way it was passed in.
	PathModeAsGiven PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// AbsolutePath returns the absolute, slash-separated form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths that would escape
// baseDir fall back to their absolute form.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}

// FormatPath renders f.Path according to mode. baseDir is only used by PathModeRelative.
func (f *File) FormatPath(mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathModeBasename:
		return BaseName(f.Path)
	}
	return f.Path
}
