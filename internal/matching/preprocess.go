// Package matching computes the similarity sub-scores between a job
// description and a resume: semantic similarity over embeddings plus
// keyword-based skills, experience and education scores.
package matching

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	specialsRe   = regexp.MustCompile(`[^\w\s.+#-]`)

	// Variant spellings normalized before embedding so "Node.js" and
	// "nodejs" land on the same token. Order matters: longer forms first.
	variantReplacer = strings.NewReplacer(
		"c++", "cpp",
		"c#", "csharp",
		".net", "dotnet",
		"node.js", "nodejs",
		"react.js", "react",
		"vue.js", "vue",
	)
)

// Preprocess normalizes text for matching: lowercase, collapse whitespace,
// strip special characters except ". + # -", and normalize common
// technology-name variants.
func Preprocess(text string) string {
	text = strings.ToLower(text)
	text = specialsRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = variantReplacer.Replace(text)
	return strings.TrimSpace(text)
}
