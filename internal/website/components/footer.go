package components

import (
	"fmt"
	"html"
	"strings"
)

// FooterOptions configures the page footer.
type FooterOptions struct {
	// Links are shown in a row; absolute URLs open in a new tab
	Links []Link
	// Copyright is the muted line under the links
	Copyright string
}

// RenderFooter generates the page footer. It renders nothing when there is
// neither a link nor a copyright line.
func RenderFooter(opts FooterOptions) string {
	if len(opts.Links) == 0 && opts.Copyright == "" {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(`<footer class="footer" role="contentinfo">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container text--center">`)
	sb.WriteString("\n")

	if len(opts.Links) > 0 {
		sb.WriteString(`<nav class="footer__links" aria-label="Footer navigation">`)
		sb.WriteString("\n")
		for _, link := range opts.Links {
			target := ""
			if strings.HasPrefix(link.URL, "http") {
				target = ` target="_blank" rel="noopener noreferrer"`
			}
			sb.WriteString(fmt.Sprintf(`<a href="%s"%s>%s</a>`,
				html.EscapeString(link.URL), target, html.EscapeString(link.Text)))
			sb.WriteString("\n")
		}
		sb.WriteString(`</nav>`)
		sb.WriteString("\n")
	}

	if opts.Copyright != "" {
		sb.WriteString(fmt.Sprintf(`<p class="footer__copyright">%s</p>`, html.EscapeString(opts.Copyright)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}
