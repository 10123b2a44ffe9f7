// Package note holds presentation helpers for note content: plain-text
// snippets for list rows, terminal markdown rendering, and vault export.
package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Snippet flattens note markdown into a single line of plain text, at most
// maxLen runes, for list descriptions. Headings, emphasis, and links are
// stripped by walking the document tree rather than regexing the source.
func Snippet(markdown string, maxLen int) string {
	source := []byte(markdown)
	parser := goldmark.DefaultParser()
	document := parser.Parse(text.NewReader(source))

	var parts []string
	ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			if t, ok := n.(*ast.Text); ok {
				if s := strings.TrimSpace(string(t.Segment.Value(source))); s != "" {
					parts = append(parts, s)
				}
			}
			return ast.WalkContinue, nil
		},
	)

	joined := strings.Join(parts, " ")
	runes := []rune(joined)
	if maxLen > 0 && len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen])) + "…"
	}
	return joined
}
