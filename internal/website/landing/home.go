// Package landing composes the Go-Sail homepage from the website components.
package landing

import (
	"strings"

	"github.com/keepchen/go-sail-website/internal/assets"
	"github.com/keepchen/go-sail-website/internal/content"
	"github.com/keepchen/go-sail-website/internal/website"
	"github.com/keepchen/go-sail-website/internal/website/components"
)

// Translator looks up UI messages. *i18n.Bundle implements it.
type Translator interface {
	T(locale, key string, args ...any) string
}

// Options configures how a homepage is rendered. The zero value renders a
// complete page with built-in English messages and <img> icons.
type Options struct {
	// Translator provides UI messages; nil uses built-in defaults
	Translator Translator
	// Icons resolves feature icon references
	Icons components.IconResolver
	// Markdown renders feature descriptions
	Markdown *components.Markdown
	// Locales feeds the language bar and hreflang alternates
	Locales []components.LocaleLink
	// HeadExtra is raw markup appended to <head>
	HeadExtra string
}

// RenderHome renders the homepage of one locale as a complete HTML document.
// Missing fields render as empty text; the result depends only on the inputs.
func RenderHome(site content.SiteConfig, locale content.LocaleContent, opts Options) string {
	msg := messages{t: opts.Translator, locale: locale.Locale}

	docsPath := site.DocsPath
	if docsPath == "" {
		docsPath = content.DefaultDocsPath
	}

	cfg := website.DefaultPageConfig()
	cfg.Title = msg.get("home.title", "Welcome") + " | " + site.Title
	cfg.Description = msg.get("home.description", site.Description)
	cfg.SiteName = site.Title
	cfg.Favicon = assets.URL(assets.FaviconPath)
	cfg.HeadExtra = opts.HeadExtra
	if site.ThemeColor != "" {
		cfg.ThemeColor = site.ThemeColor
	}
	if locale.Locale != "" {
		cfg.Language = locale.Locale
	}

	base := strings.TrimSuffix(site.URL, "/")
	cfg.URL = base + "/"
	for _, l := range opts.Locales {
		if l.Current {
			cfg.URL = base + l.URL
		}
		cfg.Alternates = append(cfg.Alternates, website.Alternate{
			Language: l.Locale,
			Label:    l.Label,
			URL:      base + l.URL,
			Current:  l.Current,
		})
	}

	var body strings.Builder

	body.WriteString(components.RenderLocaleSwitch(components.LocaleSwitchOptions{
		SkipText: msg.get("nav.skip", "Skip to main content"),
		Label:    msg.get("nav.language", "Language"),
		Locales:  opts.Locales,
	}))

	hero := components.HeroOptions{
		Title:   site.Title,
		Tagline: locale.Tagline(site),
		CallToAction: components.Link{
			Text: locale.Header.CallToAction,
			URL:  docsPath,
		},
	}
	if locale.Header.ShowBadges {
		hero.Badges = site.Badges
	}
	body.WriteString(components.RenderHero(hero))

	body.WriteString(`<main id="main-content">`)
	body.WriteString("\n")
	body.WriteString(components.RenderFeatures(components.FeaturesOptions{
		Features: locale.Features,
		Icons:    opts.Icons,
		Markdown: opts.Markdown,
	}))
	body.WriteString(`</main>`)
	body.WriteString("\n")

	footer := components.FooterOptions{
		Links: []components.Link{{Text: msg.get("footer.docs", "Docs"), URL: docsPath}},
	}
	if site.Repository != "" {
		footer.Links = append(footer.Links, components.Link{Text: msg.get("footer.github", "GitHub"), URL: site.Repository})
	}
	if site.Title != "" {
		footer.Copyright = msg.get("footer.copyright", "", map[string]any{"site": site.Title})
	}
	body.WriteString(components.RenderFooter(footer))

	return website.RenderDocument(cfg, strings.TrimSuffix(body.String(), "\n"))
}

// RenderLocale renders the homepage of locale from the catalog. It reports
// false when the catalog has no such locale. Options.Translator and
// Options.Locales default to the catalog's bundle and locale list.
func RenderLocale(cat *content.Catalog, locale string, opts Options) (string, bool) {
	lc, ok := cat.Lookup(locale)
	if !ok {
		return "", false
	}
	if opts.Translator == nil {
		opts.Translator = cat.Bundle()
	}
	if opts.Locales == nil {
		opts.Locales = LocaleLinks(cat, locale)
	}
	return RenderHome(cat.Site, lc, opts), true
}

// LocaleLinks lists the homepage of every catalog locale, marking current.
func LocaleLinks(cat *content.Catalog, current string) []components.LocaleLink {
	locales := cat.Locales()
	links := make([]components.LocaleLink, 0, len(locales))
	for _, locale := range locales {
		lc, _ := cat.Lookup(locale)
		links = append(links, components.LocaleLink{
			Locale:  locale,
			Label:   lc.Label,
			URL:     cat.PathFor(locale),
			Current: locale == current,
		})
	}
	return links
}

type messages struct {
	t      Translator
	locale string
}

// get returns the translation of key, or fallback when there is none.
func (m messages) get(key, fallback string, args ...any) string {
	if m.t == nil {
		return fallback
	}
	if value := m.t.T(m.locale, key, args...); value != key {
		return value
	}
	return fallback
}
