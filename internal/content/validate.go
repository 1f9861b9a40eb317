package content

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Catalog invariant violations.
var (
	ErrMissingDefault       = errors.New("default locale has no content")
	ErrDuplicateLocale      = errors.New("locale defined more than once")
	ErrEmptyLocale          = errors.New("locale content is incomplete")
	ErrFeatureCountMismatch = errors.New("feature count differs between locales")
	ErrIconMismatch         = errors.New("feature icons differ between locales")
	ErrUnknownLocale        = errors.New("unknown locale")
	ErrInvalidThemeColor    = errors.New("theme color must be #rgb or #rrggbb")
)

// Validate checks the cross-locale invariants and reports every violation.
// Feature counts and icons are compared against the default locale.
func (c *Catalog) Validate() error {
	var errs []error

	reference, ok := c.locales[c.defaultLocale]
	if !ok {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingDefault, c.defaultLocale))
	}

	for _, locale := range c.order {
		lc := c.locales[locale]
		if len(lc.Features) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s has no features", ErrEmptyLocale, locale))
		}
		if lc.Header.CallToAction == "" {
			errs = append(errs, fmt.Errorf("%w: %s has no call to action", ErrEmptyLocale, locale))
		}
		if !ok || locale == c.defaultLocale {
			continue
		}
		if err := compareFeatures(reference, lc); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func compareFeatures(reference, lc LocaleContent) error {
	if len(reference.Features) != len(lc.Features) {
		return fmt.Errorf("%w: %s has %d, %s has %d",
			ErrFeatureCountMismatch,
			reference.Locale, len(reference.Features),
			lc.Locale, len(lc.Features))
	}

	want, got := reference.Icons(), lc.Icons()
	mismatched := lo.Filter(lo.Range(len(want)), func(i int, _ int) bool {
		return want[i] != got[i]
	})
	if len(mismatched) == 0 {
		return nil
	}
	i := mismatched[0]
	return fmt.Errorf("%w: %s feature %d uses %q, %s uses %q (%d positions differ)",
		ErrIconMismatch, lc.Locale, i+1, got[i], reference.Locale, want[i], len(mismatched))
}

// SharedIcons returns the icon set common to every locale, in display order.
func (c *Catalog) SharedIcons() []string {
	var shared []string
	for i, locale := range c.order {
		icons := lo.Uniq(c.locales[locale].Icons())
		if i == 0 {
			shared = icons
			continue
		}
		shared = lo.Filter(shared, func(icon string, _ int) bool {
			return lo.Contains(icons, icon)
		})
	}
	return shared
}
