package parser

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:br[^>]*/?>`)
	docxTagRe   = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer doc.Close()

	// GetContent returns the document body XML. Paragraph ends become
	// newlines, remaining tags are stripped.
	content := doc.Editable().GetContent()
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content)), nil
}
