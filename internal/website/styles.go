package website

import (
	"fmt"
	"sort"
	"strings"
)

// Color palette of the Go-Sail site.
var Colors = map[string]string{
	"bg":        "#FFFFFF",
	"bgAlt":     "#F5F7FA",
	"text":      "#1C1E21",
	"textMuted": "#525860",

	// Brand colors, taken from the project badges
	"primary":      "#1E94DE",
	"primaryDark":  "#1A85C8",
	"primaryLight": "#3BA3E4",
	"onPrimary":    "#FFFFFF",

	"secondary":   "#EBEDF0",
	"onSecondary": "#1C1E21",

	"border": "#DADDE1",
}

// FontFamily uses the system font stack for instant loading.
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, 'PingFang SC', 'Microsoft YaHei', sans-serif`

// Breakpoints for responsive design (mobile-first: min-width)
var Breakpoints = map[string]string{
	"md": "768px",
	"lg": "997px",
}

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors map[string]string
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// RenderStyles generates the stylesheet of the homepage. The output is
// deterministic for a given set of options.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors: make(map[string]string),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors)+len(cfg.customColors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder

	sb.WriteString(cssReset())
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssHero())
	sb.WriteString(cssButtons())
	sb.WriteString(cssFeatures())
	sb.WriteString(cssLocaleSwitch())
	sb.WriteString(cssFooter())
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{line-height:1.65;-webkit-font-smoothing:antialiased}
img,svg{max-width:100%}
a{color:inherit;text-decoration:none}
`
}

func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(":root{%s;--font-sans:%s}\n", strings.Join(vars, ";"), FontFamily)
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh}
h1{font-size:clamp(2rem,5vw,3rem);font-weight:700;line-height:1.2}
h3{font-size:1.25rem;font-weight:700;line-height:1.3;margin-bottom:0.75rem}
p{margin-bottom:1.25rem}
`
}

func cssLayout() string {
	return `
.container{width:100%;max-width:1140px;margin:0 auto;padding:0 1rem}
.row{display:flex;flex-wrap:wrap;margin:0 -1rem}
.col{flex:1 0 100%;max-width:100%;padding:0 1rem}
.text--center{text-align:center}
.padding-horiz--md{padding-left:1rem;padding-right:1rem}
`
}

func cssHero() string {
	return `
.hero{display:flex;align-items:center;padding:4rem 2rem;text-align:center;position:relative;overflow:hidden}
.hero--primary{background:var(--color-primary);color:var(--color-onPrimary)}
.hero__title{margin-bottom:1rem}
.hero__subtitle{font-size:1.5rem;margin-bottom:1.5rem}
.heroBanner .buttons{display:flex;align-items:center;justify-content:center;margin-bottom:1.5rem}
.badges img{display:inline-block;vertical-align:middle;margin:0.25rem}
`
}

func cssButtons() string {
	return `
.button{display:inline-block;border:1px solid transparent;border-radius:0.4rem;font-weight:700;cursor:pointer;text-align:center;transition:background 0.2s}
.button--lg{padding:0.75rem 2rem;font-size:1.125rem}
.button--secondary{background:var(--color-secondary);color:var(--color-onSecondary)}
.button--secondary:hover{background:var(--color-border)}
`
}

func cssFeatures() string {
	return `
.features{display:flex;align-items:center;padding:2rem 0;width:100%}
.featureSvg{height:200px;width:200px;display:inline-block}
.features p{color:var(--color-textMuted)}
`
}

func cssLocaleSwitch() string {
	return `
.locale-switch{display:flex;justify-content:flex-end;gap:0.75rem;padding:0.5rem 1rem;font-size:0.875rem;background:var(--color-bgAlt);border-bottom:1px solid var(--color-border)}
.locale-switch a{color:var(--color-primaryDark)}
.locale-switch a[aria-current="page"]{font-weight:700;color:var(--color-text)}
`
}

func cssFooter() string {
	return `
.footer{padding:2rem 0;background:var(--color-bgAlt);border-top:1px solid var(--color-border);font-size:0.875rem}
.footer__links{display:flex;justify-content:center;gap:1.5rem;margin-bottom:0.75rem}
.footer__links a{color:var(--color-primaryDark)}
.footer__copyright{color:var(--color-textMuted);margin-bottom:0}
`
}

func cssAccessibility() string {
	return `
.skip-link{position:absolute;top:-40px;left:0;background:var(--color-primary);color:var(--color-onPrimary);padding:0.5rem 1rem;z-index:100}
.skip-link:focus{top:0}
a:focus-visible,.button:focus-visible{outline:2px solid var(--color-primaryDark);outline-offset:2px}
@media(prefers-reduced-motion:reduce){*{transition:none!important;scroll-behavior:auto!important}}
`
}

func cssResponsive() string {
	return fmt.Sprintf(`
@media(min-width:%s){.col--4{flex:0 0 33.333%%;max-width:33.333%%}}
@media(max-width:%s){.hero{padding:2rem}}
`, Breakpoints["lg"], Breakpoints["lg"])
}
