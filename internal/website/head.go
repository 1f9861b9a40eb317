package website

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// RenderHead generates the <head> section with SEO, Open Graph, hreflang
// alternates and JSON-LD.
func RenderHead(cfg PageConfig) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = Colors["primary"]
	}
	var styleOpts []StyleOption
	if themeColor != Colors["primary"] {
		styleOpts = append(styleOpts, WithCustomColors(map[string]string{"primary": themeColor}))
	}

	sb.WriteString("<head>\n")

	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")

	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}

	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", html.EscapeString(themeColor)))

	for _, alt := range cfg.Alternates {
		sb.WriteString(fmt.Sprintf(`<link rel="alternate" hreflang="%s" href="%s">`+"\n",
			html.EscapeString(alt.Language), html.EscapeString(alt.URL)))
	}

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderJSONLD(cfg))

	if cfg.Favicon != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="icon" href="%s">`+"\n", html.EscapeString(cfg.Favicon)))
	}

	sb.WriteString("<style>\n")
	sb.WriteString(RenderStyles(styleOpts...))
	sb.WriteString("\n</style>\n")

	if cfg.HeadExtra != "" {
		sb.WriteString(cfg.HeadExtra)
		sb.WriteString("\n")
	}

	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="website">` + "\n")

	if cfg.SiteName != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:site_name" content="%s">`+"\n", html.EscapeString(cfg.SiteName)))
	}
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	sb.WriteString(fmt.Sprintf(`<meta property="og:locale" content="%s">`+"\n", html.EscapeString(ogLocale(languageOf(cfg)))))

	return sb.String()
}

// ogLocale converts a BCP 47 tag to the underscore form Open Graph expects.
func ogLocale(lang string) string {
	return strings.ReplaceAll(lang, "-", "_")
}

type jsonLD struct {
	Context             string `json:"@context"`
	Type                string `json:"@type"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	URL                 string `json:"url,omitempty"`
	InLanguage          string `json:"inLanguage"`
	ProgrammingLanguage string `json:"programmingLanguage"`
}

func renderJSONLD(cfg PageConfig) string {
	name := cfg.SiteName
	if name == "" {
		name = cfg.Title
	}
	data, err := json.Marshal(jsonLD{
		Context:             "https://schema.org",
		Type:                "SoftwareSourceCode",
		Name:                name,
		Description:         cfg.Description,
		URL:                 cfg.URL,
		InLanguage:          languageOf(cfg),
		ProgrammingLanguage: "Go",
	})
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`<script type="application/ld+json">%s</script>`+"\n", data)
}

func languageOf(cfg PageConfig) string {
	if cfg.Language == "" {
		return "en"
	}
	return cfg.Language
}

// RenderDocument wraps body content in a complete HTML document.
func RenderDocument(cfg PageConfig, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
%s<body>
%s
</body>
</html>
`, html.EscapeString(languageOf(cfg)), RenderHead(cfg), bodyContent)
}
