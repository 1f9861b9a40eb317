// Package website renders the HTML document shell of the Go-Sail homepage:
// the <head> metadata, the inline stylesheet and the page wrapper. Page
// sections live in the components package and are composed by landing.
package website

// PageConfig defines the document-level metadata of a rendered page.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// SiteName is used for Open Graph and structured data
	SiteName string
	// Language is the BCP 47 tag of the page (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// Favicon is the path to the favicon
	Favicon string
	// Alternates lists the same page in other languages
	Alternates []Alternate
	// HeadExtra is raw markup appended to <head>
	HeadExtra string
}

// Alternate is a translation of the current page.
type Alternate struct {
	// Language is the BCP 47 tag of the translation
	Language string
	// Label is the human readable language name
	Label string
	// URL is the path of the translation
	URL string
	// Current marks the page being rendered
	Current bool
}

// DefaultPageConfig returns a PageConfig with sensible defaults.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Language:   "en",
		ThemeColor: Colors["primary"],
	}
}
