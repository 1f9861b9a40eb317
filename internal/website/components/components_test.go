package components

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepchen/go-sail-website/internal/content"
)

type fakeIcons struct {
	inline map[string]string
}

func (f fakeIcons) InlineSVG(ref string) (string, bool) {
	svg, ok := f.inline[ref]
	return svg, ok
}

func (f fakeIcons) URL(ref string) string {
	return "/static/" + ref
}

var (
	enRecords = []content.FeatureRecord{
		{Title: "Easy to Use", Icon: "img/a.svg", Description: "desc-A"},
		{Title: "Focus on What Matters", Icon: "img/b.svg", Description: "desc-B"},
		{Title: "Powered by Go", Icon: "img/c.svg", Description: "desc-C"},
	}
	zhRecords = []content.FeatureRecord{
		{Title: "易于使用", Icon: "img/a.svg", Description: "描述A"},
		{Title: "专注业务", Icon: "img/b.svg", Description: "描述B"},
		{Title: "用Go实现", Icon: "img/c.svg", Description: "描述C"},
	}
	icons = fakeIcons{inline: map[string]string{
		"img/a.svg": `<svg id="a"/>`,
		"img/b.svg": `<svg id="b"/>`,
	}}
)

func TestFeatureBlocks_OnePerRecordInOrder(t *testing.T) {
	blocks := slices.Collect(FeatureBlocks(enRecords, icons, NewMarkdown()))

	require.Len(t, blocks, 3)
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, enRecords[i].Title, b.Title)
		assert.Equal(t, enRecords[i].Icon, b.Icon)
	}
	assert.Equal(t, `<svg id="a"/>`, blocks[0].IconHTML)
	assert.Equal(t, `<img class="featureSvg" src="/static/img/c.svg" alt="Powered by Go">`, blocks[2].IconHTML)
	assert.Equal(t, "desc-B", blocks[1].DescriptionHTML)
}

func TestFeatureBlocks_RestartableAndIdempotent(t *testing.T) {
	seq := FeatureBlocks(enRecords, icons, NewMarkdown())

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestFeatureBlocks_EarlyStop(t *testing.T) {
	var seen []string
	for b := range FeatureBlocks(enRecords, icons, nil) {
		seen = append(seen, b.Title)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Easy to Use", "Focus on What Matters"}, seen)
}

func TestFeatureBlocks_Empty(t *testing.T) {
	assert.Empty(t, slices.Collect(FeatureBlocks(nil, icons, nil)))
	assert.Equal(t, 0, strings.Count(RenderFeatures(FeaturesOptions{}), "col col--4"))
}

func TestFeatureBlocks_DuplicatesKept(t *testing.T) {
	records := []content.FeatureRecord{enRecords[0], enRecords[0]}
	assert.Len(t, slices.Collect(FeatureBlocks(records, icons, nil)), 2)
}

func TestFeatureBlocks_CrossLocaleParity(t *testing.T) {
	en := slices.Collect(FeatureBlocks(enRecords, icons, nil))
	zh := slices.Collect(FeatureBlocks(zhRecords, icons, nil))

	require.Equal(t, len(en), len(zh))
	for i := range en {
		assert.Equal(t, en[i].Icon, zh[i].Icon)
		assert.NotEqual(t, en[i].Title, zh[i].Title)
	}
}

func TestRenderFeatures(t *testing.T) {
	out := RenderFeatures(FeaturesOptions{Features: enRecords, Icons: icons, Markdown: NewMarkdown()})

	assert.True(t, strings.HasPrefix(out, `<section class="features">`))
	assert.Equal(t, 3, strings.Count(out, `<div class="col col--4"`))
	assert.Equal(t, 3, strings.Count(out, "<h3>"))

	a := strings.Index(out, "Easy to Use")
	b := strings.Index(out, "Focus on What Matters")
	c := strings.Index(out, "Powered by Go")
	assert.True(t, a < b && b < c, "blocks keep input order")

	assert.Equal(t, out, RenderFeatures(FeaturesOptions{Features: enRecords, Icons: icons, Markdown: NewMarkdown()}))
}

func TestRenderFeatures_NilResolverAndEscaping(t *testing.T) {
	out := RenderFeatures(FeaturesOptions{Features: []content.FeatureRecord{
		{Title: "<b>x</b>", Icon: "img/x.svg", Description: "<script>"},
	}})

	assert.Contains(t, out, `<img class="featureSvg" src="/img/x.svg" alt="&lt;b&gt;x&lt;/b&gt;">`)
	assert.Contains(t, out, "<h3>&lt;b&gt;x&lt;/b&gt;</h3>")
	assert.Contains(t, out, "<p>&lt;script&gt;</p>")
}

func TestMarkdown_Inline(t *testing.T) {
	md := NewMarkdown()
	inline := func(src string) string {
		t.Helper()
		out, ok := md.Inline(src)
		assert.True(t, ok, src)
		return out
	}

	assert.Equal(t, "Built on <strong>Go</strong>.", inline("Built on **Go**."))
	assert.Equal(t, `See <a href="https://go-sail.dev">https://go-sail.dev</a>`, inline("See https://go-sail.dev"))
	assert.Equal(t, "", inline("   "))

	out, _ := md.Inline("<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")

	var nilMD *Markdown
	out, ok := nilMD.Inline("a & b")
	assert.True(t, ok)
	assert.Equal(t, "a &amp; b", out)
}

func TestMarkdown_BlockDescriptions(t *testing.T) {
	md := NewMarkdown()

	out, ok := md.Inline("a\n\nb")
	assert.False(t, ok)
	assert.Equal(t, "<p>a</p>\n<p>b</p>", out)

	out, ok = md.Inline("- one\n- two")
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(out, "<ul>"))
}

func TestRenderFeatures_MultiParagraphDescription(t *testing.T) {
	out := RenderFeatures(FeaturesOptions{
		Features: []content.FeatureRecord{{Title: "A", Icon: "img/a.svg", Description: "a\n\nb"}},
		Markdown: NewMarkdown(),
	})

	assert.NotContains(t, out, "<p><p>")
	assert.Contains(t, out, "<div class=\"feature__description\">\n<p>a</p>\n<p>b</p>\n</div>")

	blocks := slices.Collect(FeatureBlocks([]content.FeatureRecord{{Description: "a\n\nb"}, {Description: "c"}}, nil, NewMarkdown()))
	assert.True(t, blocks[0].DescriptionBlock)
	assert.False(t, blocks[1].DescriptionBlock)
}

func TestRenderHero(t *testing.T) {
	out := RenderHero(HeroOptions{
		Title:        "Go-Sail",
		Tagline:      "A lightweight progressive web framework written in Go.",
		CallToAction: Link{Text: "Getting Started", URL: "/docs/overview"},
		Badges: []content.Badge{
			{Alt: "Go", Image: "https://example.com/go.svg", Link: "https://example.com/go", BreakAfter: true},
			{Alt: "stars", Image: "https://example.com/stars.svg"},
		},
	})

	assert.Contains(t, out, `<h1 class="hero__title">Go-Sail</h1>`)
	assert.Contains(t, out, `<p class="hero__subtitle">A lightweight progressive web framework written in Go.</p>`)
	assert.Equal(t, 1, strings.Count(out, "cta-button"))
	assert.Contains(t, out, `<a class="`+CTAClass+`" href="/docs/overview">Getting Started</a>`)
	assert.Contains(t, out, `<a href="https://example.com/go" target="_blank" rel="noopener noreferrer"><img src="https://example.com/go.svg" alt="Go"></a>`+"\n<br>")
	assert.Contains(t, out, `<img src="https://example.com/stars.svg" alt="stars">`)
}

func TestRenderHero_NoBadgesEmptyCopy(t *testing.T) {
	out := RenderHero(HeroOptions{})

	assert.NotContains(t, out, `class="badges"`)
	assert.NotContains(t, out, "hero__subtitle")
	assert.Contains(t, out, `<a class="`+CTAClass+`" href=""></a>`)
}

func TestRenderLocaleSwitch(t *testing.T) {
	out := RenderLocaleSwitch(LocaleSwitchOptions{
		SkipText: "跳到主要内容",
		Label:    "语言",
		Locales: []LocaleLink{
			{Locale: "en", Label: "English", URL: "/"},
			{Locale: "zh-CN", Label: "简体中文", URL: "/zh-CN/", Current: true},
		},
	})

	assert.Contains(t, out, `<a href="#main-content" class="skip-link">跳到主要内容</a>`)
	assert.Contains(t, out, `<nav class="locale-switch" aria-label="语言">`)
	assert.Contains(t, out, `<a href="/" hreflang="en" lang="en">English</a>`)
	assert.Contains(t, out, `<a href="/zh-CN/" hreflang="zh-CN" lang="zh-CN" aria-current="page">简体中文</a>`)
}

func TestRenderLocaleSwitch_SingleLocale(t *testing.T) {
	out := RenderLocaleSwitch(LocaleSwitchOptions{Locales: []LocaleLink{{Locale: "en", URL: "/"}}})
	assert.Contains(t, out, "Skip to main content")
	assert.NotContains(t, out, "<nav")
}

func TestRenderFooter(t *testing.T) {
	assert.Empty(t, RenderFooter(FooterOptions{}))

	out := RenderFooter(FooterOptions{
		Links: []Link{
			{Text: "Docs", URL: "/docs/overview"},
			{Text: "GitHub", URL: "https://github.com/keepchen/go-sail"},
		},
		Copyright: "Copyright © Go-Sail",
	})
	assert.Contains(t, out, `<a href="/docs/overview">Docs</a>`)
	assert.Contains(t, out, `<a href="https://github.com/keepchen/go-sail" target="_blank" rel="noopener noreferrer">GitHub</a>`)
	assert.Contains(t, out, `<p class="footer__copyright">Copyright © Go-Sail</p>`)
}
