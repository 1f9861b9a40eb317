package content

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enLocale = `locale: en
label: English
header:
  callToAction: Getting Started
  showBadges: true
features:
  - title: Easy to Use
    icon: img/a.svg
    description: desc-A
  - title: Focus on What Matters
    icon: img/b.svg
    description: desc-B
  - title: Powered by Go
    icon: img/c.svg
    description: desc-C
messages:
  home.title: Welcome
`

const zhLocale = `locale: zh-CN
label: 简体中文
header:
  tagline: 一个轻量的渐进式Golang web框架。
  callToAction: 准备开始
features:
  - title: 易于使用
    icon: img/a.svg
    description: 描述A
  - title: 专注业务
    icon: img/b.svg
    description: 描述B
  - title: 用Go实现
    icon: img/c.svg
    description: 描述C
`

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadEmbedded(t *testing.T) {
	cat, err := LoadEmbedded("en")
	require.NoError(t, err)

	assert.Equal(t, "en", cat.DefaultLocale())
	assert.Equal(t, []string{"en", "zh-CN"}, cat.Locales())
	assert.Equal(t, "Go-Sail", cat.Site.Title)
	assert.Equal(t, "/docs/overview", cat.Site.DocsPath)
	assert.Len(t, cat.Site.Badges, 7)

	en, ok := cat.Lookup("en")
	require.True(t, ok)
	zh, ok := cat.Lookup("zh-CN")
	require.True(t, ok)

	assert.Len(t, en.Features, 3)
	assert.Equal(t, len(en.Features), len(zh.Features))
	assert.Equal(t, en.Icons(), zh.Icons())
	assert.Equal(t, "Easy to Use", en.Features[0].Title)
	assert.Equal(t, "易于使用", zh.Features[0].Title)
	assert.True(t, en.Header.ShowBadges)
	assert.False(t, zh.Header.ShowBadges)
}

func TestLoad_ScenarioCatalogs(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"locales/en.yaml":    enLocale,
		"locales/zh-CN.yaml": zhLocale,
	}), "en")
	require.NoError(t, err)

	enContent, ok := cat.Lookup("en")
	require.True(t, ok)
	en := enContent.Features
	require.Len(t, en, 3)
	assert.Equal(t, FeatureRecord{Title: "Easy to Use", Icon: "img/a.svg", Description: "desc-A"}, en[0])
	assert.Equal(t, "Focus on What Matters", en[1].Title)
	assert.Equal(t, "Powered by Go", en[2].Title)

	assert.Equal(t, []string{"img/a.svg", "img/b.svg", "img/c.svg"}, cat.SharedIcons())
	_, ok = cat.Lookup("fr")
	assert.False(t, ok)
}

func TestLoad_SiteDefaultsWithoutSiteFile(t *testing.T) {
	cat, err := Load(testFS(map[string]string{"locales/en.yaml": enLocale}), "en")
	require.NoError(t, err)
	assert.Equal(t, DefaultSite(), cat.Site)
}

func TestLoad_SiteDocsPathDefault(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"site.yaml":       "title: Docs\ntagline: hello\n",
		"locales/en.yaml": enLocale,
	}), "en")
	require.NoError(t, err)
	assert.Equal(t, "Docs", cat.Site.Title)
	assert.Equal(t, DefaultDocsPath, cat.Site.DocsPath)
}

func TestLoad_SiteThemeColor(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"site.yaml":       "title: Docs\nthemeColor: \"#ff6600\"\n",
		"locales/en.yaml": enLocale,
	}), "en")
	require.NoError(t, err)
	assert.Equal(t, "#ff6600", cat.Site.ThemeColor)
}

func TestLocaleContent_Tagline(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"site.yaml":          "title: Go-Sail\ntagline: site tagline\n",
		"locales/en.yaml":    enLocale,
		"locales/zh-CN.yaml": zhLocale,
	}), "en")
	require.NoError(t, err)

	en, _ := cat.Lookup("en")
	zh, _ := cat.Lookup("zh-CN")
	assert.Equal(t, "site tagline", en.Tagline(cat.Site))
	assert.Equal(t, "一个轻量的渐进式Golang web框架。", zh.Tagline(cat.Site))
}

func TestCatalog_LookupAndPaths(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"locales/en.yaml":    enLocale,
		"locales/zh-CN.yaml": zhLocale,
	}), "en")
	require.NoError(t, err)

	zh, ok := cat.Lookup("zh-CN")
	require.True(t, ok)
	assert.Equal(t, "zh-CN", zh.Locale)
	_, ok = cat.Lookup("fr")
	assert.False(t, ok)

	assert.Equal(t, "/", cat.PathFor("en"))
	assert.Equal(t, "/zh-CN/", cat.PathFor("zh-CN"))
}

func TestCatalog_BundleFallsBackToDefault(t *testing.T) {
	cat, err := Load(testFS(map[string]string{
		"locales/en.yaml":    enLocale,
		"locales/zh-CN.yaml": zhLocale,
	}), "en")
	require.NoError(t, err)

	assert.Equal(t, "Welcome", cat.Bundle().T("zh-CN", "home.title"))
	assert.Equal(t, []string{"en", "zh-CN"}, cat.Bundle().Locales())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		locale  string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no locale files",
			files:   map[string]string{"site.yaml": "title: x\n"},
			locale:  "en",
			wantMsg: "no locale files",
		},
		{
			name:    "missing default",
			files:   map[string]string{"locales/zh-CN.yaml": zhLocale},
			locale:  "en",
			wantErr: ErrMissingDefault,
		},
		{
			name: "feature count mismatch",
			files: map[string]string{
				"locales/en.yaml": enLocale,
				"locales/zh-CN.yaml": `locale: zh-CN
header:
  callToAction: 准备开始
features:
  - title: 易于使用
    icon: img/a.svg
`,
			},
			locale:  "en",
			wantErr: ErrFeatureCountMismatch,
		},
		{
			name: "icon mismatch",
			files: map[string]string{
				"locales/en.yaml": enLocale,
				"locales/zh-CN.yaml": `locale: zh-CN
header:
  callToAction: 准备开始
features:
  - {title: 一, icon: img/a.svg}
  - {title: 二, icon: img/c.svg}
  - {title: 三, icon: img/b.svg}
`,
			},
			locale:  "en",
			wantErr: ErrIconMismatch,
		},
		{
			name: "empty locale",
			files: map[string]string{
				"locales/en.yaml": "locale: en\nheader:\n  callToAction: Go\nfeatures: []\n",
			},
			locale:  "en",
			wantErr: ErrEmptyLocale,
		},
		{
			name: "missing call to action",
			files: map[string]string{
				"locales/en.yaml": "locale: en\nfeatures:\n  - {title: a, icon: img/a.svg}\n",
			},
			locale:  "en",
			wantErr: ErrEmptyLocale,
		},
		{
			name: "duplicate locale",
			files: map[string]string{
				"locales/en.yaml":    enLocale,
				"locales/zh-CN.yaml": zhLocale,
				"locales/zh-cn.yaml": zhLocale,
			},
			locale:  "en",
			wantErr: ErrDuplicateLocale,
		},
		{
			name:    "file name mismatch",
			files:   map[string]string{"locales/english.yaml": enLocale},
			locale:  "en",
			wantMsg: "must match the file name",
		},
		{
			name:    "unknown field",
			files:   map[string]string{"locales/en.yaml": enLocale + "colour: blue\n"},
			locale:  "en",
			wantMsg: "field colour not found",
		},
		{
			name: "invalid theme color",
			files: map[string]string{
				"site.yaml":       "title: x\nthemeColor: \"red;}body{display:none\"\n",
				"locales/en.yaml": enLocale,
			},
			locale:  "en",
			wantErr: ErrInvalidThemeColor,
		},
		{
			name:    "invalid default locale",
			files:   map[string]string{"locales/en.yaml": enLocale},
			locale:  "",
			wantMsg: "default locale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testFS(tt.files), tt.locale)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	_, err := Load(testFS(map[string]string{
		"locales/en.yaml": enLocale,
		"locales/ja.yaml": "locale: ja\nfeatures: []\n",
	}), "en")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrEmptyLocale)
	assert.ErrorIs(t, err, ErrFeatureCountMismatch)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "locales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locales", "en.yaml"), []byte(enLocale), 0o644))

	cat, err := Open(dir, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, cat.Locales())

	cat, err = Open("", "en")
	require.NoError(t, err)
	assert.Len(t, cat.Locales(), 2)

	_, err = Open(filepath.Join(dir, "missing"), "en")
	assert.Error(t, err)
}
