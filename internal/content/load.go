package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keepchen/go-sail-website/pkg/i18n"
)

var themeColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const (
	siteFile    = "site.yaml"
	localesGlob = "locales/*.yaml"
)

//go:embed defaults
var embedded embed.FS

// Defaults returns the content tree compiled into the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultSite returns the site configuration used when site.yaml is absent.
func DefaultSite() SiteConfig {
	return SiteConfig{
		Title:    "Go-Sail",
		Tagline:  "A lightweight progressive web framework written in Go.",
		DocsPath: DefaultDocsPath,
	}
}

// LoadEmbedded loads the compiled-in content.
func LoadEmbedded(defaultLocale string) (*Catalog, error) {
	return Load(Defaults(), defaultLocale)
}

// Open loads content from dir, or the compiled-in content when dir is empty.
func Open(dir, defaultLocale string) (*Catalog, error) {
	if dir == "" {
		return LoadEmbedded(defaultLocale)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open content dir: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), defaultLocale)
}

// Load reads site.yaml and locales/*.yaml from fsys and validates the result.
func Load(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	defaultCanonical, err := i18n.Canonical(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("default locale: %w", err)
	}

	site, err := loadSite(fsys)
	if err != nil {
		return nil, err
	}

	paths, err := fs.Glob(fsys, localesGlob)
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files match %s", localesGlob)
	}
	sort.Strings(paths)

	cat := &Catalog{
		Site:          site,
		defaultLocale: defaultCanonical,
		locales:       make(map[string]LocaleContent, len(paths)),
	}

	var others []string
	for _, p := range paths {
		lc, err := loadLocale(fsys, p)
		if err != nil {
			return nil, err
		}
		if _, exists := cat.locales[lc.Locale]; exists {
			return nil, fmt.Errorf("%s: %w: %s", p, ErrDuplicateLocale, lc.Locale)
		}
		cat.locales[lc.Locale] = lc
		if lc.Locale != defaultCanonical {
			others = append(others, lc.Locale)
		}
	}

	sort.Strings(others)
	if _, ok := cat.locales[defaultCanonical]; ok {
		cat.order = append([]string{defaultCanonical}, others...)
	} else {
		cat.order = others
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	bundle, err := i18n.NewBundle(defaultCanonical)
	if err != nil {
		return nil, err
	}
	for _, locale := range cat.order {
		if err := bundle.AddMessages(locale, cat.locales[locale].Messages); err != nil {
			return nil, fmt.Errorf("register messages for %s: %w", locale, err)
		}
	}
	cat.bundle = bundle

	return cat, nil
}

func loadSite(fsys fs.FS) (SiteConfig, error) {
	site := DefaultSite()

	data, err := fs.ReadFile(fsys, siteFile)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read %s: %w", siteFile, err)
	}
	if err := decodeStrict(data, &site); err != nil {
		return SiteConfig{}, fmt.Errorf("parse %s: %w", siteFile, err)
	}
	if site.DocsPath == "" {
		site.DocsPath = DefaultDocsPath
	}
	if site.ThemeColor != "" && !themeColorPattern.MatchString(site.ThemeColor) {
		return SiteConfig{}, fmt.Errorf("%s: %w: %q", siteFile, ErrInvalidThemeColor, site.ThemeColor)
	}
	return site, nil
}

func loadLocale(fsys fs.FS, p string) (LocaleContent, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return LocaleContent{}, fmt.Errorf("read %s: %w", p, err)
	}

	var lc LocaleContent
	if err := decodeStrict(data, &lc); err != nil {
		return LocaleContent{}, fmt.Errorf("parse %s: %w", p, err)
	}

	canonical, err := i18n.Canonical(lc.Locale)
	if err != nil {
		return LocaleContent{}, fmt.Errorf("%s: %w", p, err)
	}
	fromName, err := i18n.Canonical(strings.TrimSuffix(path.Base(p), path.Ext(p)))
	if err != nil || fromName != canonical {
		return LocaleContent{}, fmt.Errorf("%s: locale %q must match the file name", p, lc.Locale)
	}

	lc.Locale = canonical
	if lc.Label == "" {
		lc.Label = canonical
	}
	if lc.Messages == nil {
		lc.Messages = map[string]string{}
	}
	return lc, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}
