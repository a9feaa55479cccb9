// Package markdown renders document bodies and answers structural questions
// about them.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts a markdown body (front matter already removed) to HTML.
func Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Headings parses a markdown body and returns the text of every heading at
// the given level, in document order. Feature documents use level-2 headings
// for their per-subject sections.
func Headings(body []byte, level int) []string {
	root := md.Parser().Parse(text.NewReader(body))

	var out []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != level {
			return gmast.WalkContinue, nil
		}
		out = append(out, string(headingText(h, body)))
		return gmast.WalkSkipChildren, nil
	})
	return out
}

func headingText(h *gmast.Heading, source []byte) []byte {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.Bytes()
}
