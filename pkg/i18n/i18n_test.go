package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := NewBundle("en")
	require.NoError(t, err)
	require.NoError(t, b.AddMessages("en", map[string]string{
		"home.title":    "Welcome",
		"nav.language":  "Language",
		"greeting":      "Hello %1",
		"greeting.name": "Hello {{name}}",
	}))
	require.NoError(t, b.AddMessages("zh-cn", map[string]string{
		"nav.language": "语言",
	}))
	return b
}

func TestCanonical(t *testing.T) {
	got, err := Canonical(" zh-cn ")
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", got)

	_, err = Canonical("")
	assert.ErrorIs(t, err, ErrInvalidLocale)

	_, err = Canonical("not a locale!")
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestBundle_LocalesKeepDefaultFirst(t *testing.T) {
	b := newTestBundle(t)
	assert.Equal(t, []string{"en", "zh-CN"}, b.Locales())
	assert.Equal(t, "zh-CN", b.Match("ZH-cn"))
	assert.Equal(t, "en", b.Match("fr"))
}

func TestBundle_TFallsBack(t *testing.T) {
	b := newTestBundle(t)

	assert.Equal(t, "语言", b.T("zh-CN", "nav.language"))
	assert.Equal(t, "Welcome", b.T("zh-CN", "home.title"), "falls back to default locale")
	assert.Equal(t, "missing.key", b.T("zh-CN", "missing.key"), "falls back to key")
	assert.Equal(t, "Welcome", b.T("fr", "home.title"), "unknown locale uses default")
}

func TestBundle_TInterpolates(t *testing.T) {
	b := newTestBundle(t)

	assert.Equal(t, "Hello Go-Sail", b.T("en", "greeting", "Go-Sail"))
	assert.Equal(t, "Hello gopher", b.T("en", "greeting.name", map[string]any{"name": "gopher"}))
}

func TestBundle_Match(t *testing.T) {
	b := newTestBundle(t)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{name: "no preference", prefs: nil, want: "en"},
		{name: "exact", prefs: []string{"zh-CN"}, want: "zh-CN"},
		{name: "accept header", prefs: []string{"zh-CN,zh;q=0.9,en;q=0.8"}, want: "zh-CN"},
		{name: "base language", prefs: []string{"zh"}, want: "zh-CN"},
		{name: "regional english", prefs: []string{"en-GB"}, want: "en"},
		{name: "unsupported", prefs: []string{"fr-FR"}, want: "en"},
		{name: "garbage ignored", prefs: []string{"!!!", "zh-CN"}, want: "zh-CN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Match(tt.prefs...))
		})
	}
}
