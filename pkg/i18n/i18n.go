// Package i18n provides locale negotiation and message lookup.
//
// Locales are BCP 47 tags kept in their canonical form ("en", "zh-CN").
// Lookups fall back to the bundle's default locale and finally to the key.
package i18n

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned for tags that do not parse as BCP 47.
var ErrInvalidLocale = errors.New("invalid locale tag")

// Canonical parses a locale tag and returns its canonical string form.
func Canonical(locale string) (string, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidLocale)
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
	}
	return tag.String(), nil
}

// Bundle holds the messages for every supported locale.
type Bundle struct {
	defaultLocale string
	locales       []string
	tags          []language.Tag
	messages      map[string]map[string]string
	matcher       language.Matcher
	mu            sync.RWMutex
}

// NewBundle creates a bundle whose fallback locale is defaultLocale.
func NewBundle(defaultLocale string) (*Bundle, error) {
	canonical, err := Canonical(defaultLocale)
	if err != nil {
		return nil, err
	}
	b := &Bundle{
		defaultLocale: canonical,
		messages:      make(map[string]map[string]string),
	}
	b.register(canonical)
	return b, nil
}

// DefaultLocale returns the fallback locale.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// AddMessages merges messages into a locale, registering it if needed.
func (b *Bundle) AddMessages(locale string, messages map[string]string) error {
	canonical, err := Canonical(locale)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.register(canonical)
	for key, value := range messages {
		b.messages[canonical][key] = value
	}
	return nil
}

// register must be called with mu held (or before the bundle is shared).
func (b *Bundle) register(canonical string) {
	if _, ok := b.messages[canonical]; ok {
		return
	}
	b.messages[canonical] = make(map[string]string)
	b.locales = append(b.locales, canonical)
	b.tags = append(b.tags, language.Make(canonical))
	// The first tag handed to the matcher is its fallback.
	b.matcher = language.NewMatcher(b.tags)
}

// Locales returns registered locales, default first, then in registration order.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.locales))
	copy(out, b.locales)
	return out
}

// T translates key for locale.
func (b *Bundle) T(locale, key string, args ...any) string {
	if value, ok := b.lookup(locale, key); ok {
		return interpolate(value, args...)
	}
	if value, ok := b.lookup(b.defaultLocale, key); ok {
		return interpolate(value, args...)
	}
	return key
}

func (b *Bundle) lookup(locale, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	messages, ok := b.messages[locale]
	if !ok {
		return "", false
	}
	value, ok := messages[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Match picks the best supported locale for the given preferences. Each
// preference may be a single tag or a full Accept-Language header value.
func (b *Bundle) Match(preferences ...string) string {
	var wanted []language.Tag
	for _, pref := range preferences {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return b.defaultLocale
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	_, index, confidence := b.matcher.Match(wanted...)
	if confidence == language.No {
		return b.defaultLocale
	}
	return b.locales[index]
}

// interpolate replaces %1, %2... with positional args, and {{name}} with
// values when the only argument is a map.
func interpolate(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}

	result := template
	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			for key, value := range m {
				result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprint(value))
			}
			return result
		}
	}

	for i, arg := range args {
		result = strings.ReplaceAll(result, fmt.Sprintf("%%%d", i+1), fmt.Sprint(arg))
	}
	return result
}
