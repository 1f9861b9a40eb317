package components

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the short Markdown fragments used in feature
// descriptions. Raw HTML in the source is escaped.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer with GFM strikethrough and autolinks.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		),
	}
}

// Inline renders src and unwraps a single enclosing paragraph, so the result
// can be placed inside an existing <p>. Sources that render to anything else
// come back as block markup with inline set to false.
func (m *Markdown) Inline(src string) (out string, inline bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", true
	}
	if m == nil || m.md == nil {
		return html.EscapeString(src), true
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src), true
	}

	out = strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		return strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>"), true
	}
	return out, false
}
