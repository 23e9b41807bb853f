// Package sanitizer removes markup from user and CMS supplied text. All
// modes run the same bluemonday engine with a different allow-list:
//
//   - SanitizeText strips every tag and leaves plain text.
//   - SanitizeRichText keeps a small inline subset for CMS rich text.
//   - SanitizeSVG keeps vector-graphic elements for CMS icon markup.
//   - SanitizeArticle extends the rich text set with block elements for
//     rendered Markdown case studies.
package sanitizer

import (
	"html"
	"regexp"
	"strings"

	"portfolio-website/internal/domain"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy     = bluemonday.StrictPolicy()
	richTextPolicy = newRichTextPolicy()
	svgPolicy      = newSVGPolicy()
	articlePolicy  = newArticlePolicy()

	// Re-escapes plain text the way a DOM serializer does for text nodes.
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "p", "br")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^(_blank|_self)$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")
	return p
}

func newArticlePolicy() *bluemonday.Policy {
	p := newRichTextPolicy()
	p.AllowElements("h2", "h3", "h4", "ul", "ol", "li", "blockquote", "code", "pre", "hr", "del", "table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[a-z0-9-]+$`)).OnElements("h2", "h3", "h4")
	return p
}

func newSVGPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("svg", "g", "path", "circle", "ellipse", "rect", "line", "polyline", "polygon", "title", "defs", "lineargradient", "stop")
	p.AllowAttrs("xmlns", "viewbox", "width", "height", "preserveaspectratio", "aria-hidden", "role", "focusable").OnElements("svg")
	p.AllowAttrs(
		"fill", "fill-rule", "clip-rule", "fill-opacity",
		"stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "stroke-opacity",
		"opacity", "transform", "class",
	).Globally()
	p.AllowAttrs("d").OnElements("path")
	p.AllowAttrs("cx", "cy", "r", "rx", "ry").OnElements("circle", "ellipse", "rect")
	p.AllowAttrs("x", "y").OnElements("rect")
	p.AllowAttrs("x1", "y1", "x2", "y2").OnElements("line", "lineargradient")
	p.AllowAttrs("points").OnElements("polyline", "polygon")
	p.AllowAttrs("id").OnElements("lineargradient")
	p.AllowAttrs("offset", "stop-color", "stop-opacity").OnElements("stop")
	return p
}

func sanitize(p *bluemonday.Policy, s string) string {
	return strings.TrimSpace(p.Sanitize(newlines.Replace(s)))
}

// SanitizeText trims s and removes all markup. The result is plain text in
// which only &, < and > are entity-escaped.
func SanitizeText(s string) string {
	return textEscaper.Replace(html.UnescapeString(sanitize(textPolicy, s)))
}

// SanitizeRichText keeps b, i, em, strong, p, br and links with
// href/target/rel attributes.
func SanitizeRichText(s string) string {
	return sanitize(richTextPolicy, s)
}

// SanitizeArticle is SanitizeRichText plus headings, lists, code blocks,
// tables and images.
func SanitizeArticle(s string) string {
	return sanitize(articlePolicy, s)
}

// SanitizeSVG keeps inline SVG icon markup and drops scripts, event handlers
// and external references.
func SanitizeSVG(s string) string {
	return sanitize(svgPolicy, s)
}

// SanitizeInquiry returns a copy of data with every field stripped to plain text.
func SanitizeInquiry(data *domain.InquiryFormData) *domain.InquiryFormData {
	out := &domain.InquiryFormData{
		Name:    SanitizeText(data.Name),
		Email:   SanitizeText(data.Email),
		Subject: SanitizeText(data.Subject),
		Message: SanitizeText(data.Message),
	}
	if len(data.Extra) > 0 {
		out.Extra = make(map[string]string, len(data.Extra))
		for k, v := range data.Extra {
			out.Extra[k] = SanitizeText(v)
		}
	}
	return out
}

// StrippedMarkup reports whether sanitizing raw changed more than whitespace
// and escaping.
func StrippedMarkup(raw string) bool {
	plain := strings.TrimSpace(newlines.Replace(raw))
	return html.UnescapeString(SanitizeText(raw)) != plain
}
