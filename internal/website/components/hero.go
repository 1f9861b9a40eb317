package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/keepchen/go-sail-website/internal/content"
)

// CTAClass is the class list of the homepage call-to-action link.
const CTAClass = "button button--secondary button--lg cta-button"

// HeroOptions configures the hero header.
type HeroOptions struct {
	// Title is the main headline (the site title)
	Title string
	// Tagline is shown below the title
	Tagline string
	// CallToAction is the single link to the documentation
	CallToAction Link
	// Badges are rendered under the call to action when non-empty
	Badges []content.Badge
}

// Link is a text anchor.
type Link struct {
	Text string
	URL  string
}

// RenderHero generates the hero header with title, tagline, exactly one
// call-to-action link and the optional badge rows.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<header class="hero hero--primary heroBanner">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<h1 class="hero__title">%s</h1>`, html.EscapeString(opts.Title)))
	sb.WriteString("\n")
	if opts.Tagline != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero__subtitle">%s</p>`, html.EscapeString(opts.Tagline)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<div class="buttons">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<a class="%s" href="%s">%s</a>`,
		CTAClass,
		html.EscapeString(opts.CallToAction.URL),
		html.EscapeString(opts.CallToAction.Text)))
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if len(opts.Badges) > 0 {
		sb.WriteString(renderBadges(opts.Badges))
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderBadges(badges []content.Badge) string {
	var sb strings.Builder

	sb.WriteString(`<p class="badges">`)
	sb.WriteString("\n")
	for _, b := range badges {
		img := fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(b.Image), html.EscapeString(b.Alt))
		if b.Link != "" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
				html.EscapeString(b.Link), img))
		} else {
			sb.WriteString(img)
		}
		sb.WriteString("\n")
		if b.BreakAfter {
			sb.WriteString("<br>\n")
		}
	}
	sb.WriteString(`</p>`)
	sb.WriteString("\n")

	return sb.String()
}
