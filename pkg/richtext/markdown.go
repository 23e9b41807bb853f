// Package richtext turns CMS Markdown into HTML that is safe to embed.
package richtext

import (
	"bytes"
	"fmt"

	"portfolio-website/pkg/sanitizer"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to sanitized HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub Flavored Markdown. Raw HTML in
// the source is dropped by goldmark and the output is sanitized again.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &Renderer{md: md}
}

// Render converts markdown and sanitizes the result.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return sanitizer.SanitizeArticle(buf.String()), nil
}
