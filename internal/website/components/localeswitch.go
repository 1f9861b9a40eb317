// Package components provides the sections of the Go-Sail homepage. Every
// renderer is a pure function of its options and returns HTML text.
package components

import (
	"fmt"
	"html"
	"strings"
)

// LocaleLink points at the homepage of one locale.
type LocaleLink struct {
	Locale  string
	Label   string
	URL     string
	Current bool
}

// LocaleSwitchOptions configures the skip link and language bar.
type LocaleSwitchOptions struct {
	// SkipText is the label of the skip-to-content link
	SkipText string
	// Label is the accessible name of the language navigation
	Label string
	// Locales lists every locale; the bar is omitted when there is only one
	Locales []LocaleLink
}

// RenderLocaleSwitch generates the skip link followed by the language bar.
func RenderLocaleSwitch(opts LocaleSwitchOptions) string {
	var sb strings.Builder

	skip := opts.SkipText
	if skip == "" {
		skip = "Skip to main content"
	}
	sb.WriteString(fmt.Sprintf(`<a href="#main-content" class="skip-link">%s</a>`, html.EscapeString(skip)))
	sb.WriteString("\n")

	if len(opts.Locales) < 2 {
		return sb.String()
	}

	label := opts.Label
	if label == "" {
		label = "Language"
	}
	sb.WriteString(fmt.Sprintf(`<nav class="locale-switch" aria-label="%s">`, html.EscapeString(label)))
	sb.WriteString("\n")
	for _, l := range opts.Locales {
		current := ""
		if l.Current {
			current = ` aria-current="page"`
		}
		text := l.Label
		if text == "" {
			text = l.Locale
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" hreflang="%s" lang="%s"%s>%s</a>`,
			html.EscapeString(l.URL),
			html.EscapeString(l.Locale),
			html.EscapeString(l.Locale),
			current,
			html.EscapeString(text)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}
