// Package content holds the homepage data: site configuration and, for every
// supported locale, the header copy, the ordered feature records and the UI
// messages. All of it is loaded once from YAML and treated as read-only.
package content

import (
	"github.com/samber/lo"

	"github.com/keepchen/go-sail-website/pkg/i18n"
)

// DefaultDocsPath is the documentation entry linked from the homepage.
const DefaultDocsPath = "/docs/overview"

// SiteConfig is the site-wide configuration shared by every locale.
type SiteConfig struct {
	Title       string  `yaml:"title"`
	Tagline     string  `yaml:"tagline"`
	Description string  `yaml:"description"`
	URL         string  `yaml:"url"`
	DocsPath    string  `yaml:"docsPath"`
	Repository  string  `yaml:"repository"`
	Badges      []Badge `yaml:"badges"`
	// ThemeColor replaces the primary brand color, as #rgb or #rrggbb.
	ThemeColor string `yaml:"themeColor"`
}

// Badge is a static status image shown under the tagline.
type Badge struct {
	Alt   string `yaml:"alt"`
	Image string `yaml:"image"`
	// Link wraps the image in an anchor opening in a new tab when set.
	Link string `yaml:"link"`
	// BreakAfter starts a new badge row after this one.
	BreakAfter bool `yaml:"breakAfter"`
}

// FeatureRecord describes one marketed capability.
type FeatureRecord struct {
	Title string `yaml:"title"`
	// Icon is an asset path relative to the static root, e.g. "img/easy-to-use.svg".
	Icon string `yaml:"icon"`
	// Description is a short Markdown fragment.
	Description string `yaml:"description"`
}

// HeaderCopy is the locale-specific text of the hero header.
type HeaderCopy struct {
	// Tagline overrides SiteConfig.Tagline when non-empty.
	Tagline      string `yaml:"tagline"`
	CallToAction string `yaml:"callToAction"`
	ShowBadges   bool   `yaml:"showBadges"`
}

// LocaleContent is everything rendered for one locale.
type LocaleContent struct {
	Locale   string            `yaml:"locale"`
	Label    string            `yaml:"label"`
	Header   HeaderCopy        `yaml:"header"`
	Features []FeatureRecord   `yaml:"features"`
	Messages map[string]string `yaml:"messages"`
}

// Tagline returns the header tagline for this locale.
func (lc LocaleContent) Tagline(site SiteConfig) string {
	if lc.Header.Tagline != "" {
		return lc.Header.Tagline
	}
	return site.Tagline
}

// Icons returns the icon references in display order.
func (lc LocaleContent) Icons() []string {
	return lo.Map(lc.Features, func(f FeatureRecord, _ int) string {
		return f.Icon
	})
}

// Catalog is the loaded, validated mapping from locale to content.
type Catalog struct {
	Site SiteConfig

	defaultLocale string
	order         []string
	locales       map[string]LocaleContent
	bundle        *i18n.Bundle
}

// DefaultLocale returns the locale served at the site root.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the supported locales, default first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the content for an exact canonical locale.
func (c *Catalog) Lookup(locale string) (LocaleContent, bool) {
	lc, ok := c.locales[locale]
	return lc, ok
}

// Bundle returns the message bundle built from every locale's messages.
func (c *Catalog) Bundle() *i18n.Bundle {
	return c.bundle
}

// PathFor returns the homepage path of locale: "/" for the default locale and
// "/<locale>/" otherwise.
func (c *Catalog) PathFor(locale string) string {
	if locale == c.defaultLocale {
		return "/"
	}
	return "/" + locale + "/"
}
