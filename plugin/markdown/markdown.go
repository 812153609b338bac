// Package markdown provides lightweight markdown inspection for note files.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const maxTitleLen = 50

// Service parses note content for display metadata.
type Service struct {
	md goldmark.Markdown
}

// NewService creates a markdown service with a default goldmark parser.
func NewService() *Service {
	return &Service{
		md: goldmark.New(),
	}
}

// Title returns a display title for the given note content: the text of the
// first heading, or the first non-empty line when no heading exists.
// Titles are truncated to 50 runes (rune-safe for CJK).
func (s *Service) Title(content string) string {
	source := []byte(content)
	doc := s.md.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.Heading); ok {
			title = headingText(n, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		title = firstLine(content)
	}
	return truncate(strings.TrimSpace(title), maxTitleLen)
}

func headingText(heading ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
