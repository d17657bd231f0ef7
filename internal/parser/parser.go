// Package parser extracts plain text and structured candidate information
// from uploaded resume files.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates a file extension we do not parse.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrCorrupted indicates a file that has a supported extension but
	// cannot be decoded.
	ErrCorrupted = errors.New("corrupted file")
)

// Extension returns the lowercased extension of filename without the dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// ExtractText extracts the plain text of a resume file, dispatching on the
// file extension.
func ExtractText(filename string, data []byte) (string, error) {
	switch Extension(filename) {
	case "pdf":
		return extractPDFText(data)
	case "docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}
