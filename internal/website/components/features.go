package components

import (
	"fmt"
	"html"
	"iter"
	"strings"

	"github.com/keepchen/go-sail-website/internal/content"
)

// IconResolver turns an icon reference into markup.
type IconResolver interface {
	// InlineSVG returns inline <svg> markup, or false when ref cannot be inlined.
	InlineSVG(ref string) (string, bool)
	// URL returns the public URL of ref.
	URL(ref string) string
}

// FeatureBlock is the rendered form of one feature record.
type FeatureBlock struct {
	Index int
	Title string
	Icon  string
	// IconHTML is the icon markup (inline SVG or an <img> element)
	IconHTML string
	// DescriptionHTML is the rendered description
	DescriptionHTML string
	// DescriptionBlock is set when DescriptionHTML holds block elements
	// (several paragraphs, a list) and cannot sit inside a <p>
	DescriptionBlock bool
}

// FeatureBlocks maps records to blocks one to one, in order. The sequence is
// lazy and may be ranged over any number of times.
func FeatureBlocks(records []content.FeatureRecord, icons IconResolver, md *Markdown) iter.Seq[FeatureBlock] {
	return func(yield func(FeatureBlock) bool) {
		for i, rec := range records {
			desc, inline := md.Inline(rec.Description)
			block := FeatureBlock{
				Index:            i,
				Title:            rec.Title,
				Icon:             rec.Icon,
				IconHTML:         iconHTML(rec, icons),
				DescriptionHTML:  desc,
				DescriptionBlock: !inline,
			}
			if !yield(block) {
				return
			}
		}
	}
}

func iconHTML(rec content.FeatureRecord, icons IconResolver) string {
	if icons == nil {
		return fmt.Sprintf(`<img class="featureSvg" src="%s" alt="%s">`,
			html.EscapeString("/"+strings.TrimPrefix(rec.Icon, "/")), html.EscapeString(rec.Title))
	}
	if svg, ok := icons.InlineSVG(rec.Icon); ok {
		return svg
	}
	return fmt.Sprintf(`<img class="featureSvg" src="%s" alt="%s">`,
		html.EscapeString(icons.URL(rec.Icon)), html.EscapeString(rec.Title))
}

// FeaturesOptions configures the features section.
type FeaturesOptions struct {
	// Features is the ordered list of records to display
	Features []content.FeatureRecord
	// Icons resolves icon references; nil renders plain <img> elements
	Icons IconResolver
	// Markdown renders descriptions; nil escapes them as text
	Markdown *Markdown
}

// RenderFeatures generates the feature grid: one column per record.
func RenderFeatures(opts FeaturesOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="features">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")

	for block := range FeatureBlocks(opts.Features, opts.Icons, opts.Markdown) {
		sb.WriteString(renderFeatureBlock(block))
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFeatureBlock(b FeatureBlock) string {
	desc := "<p>" + b.DescriptionHTML + "</p>"
	if b.DescriptionBlock {
		desc = `<div class="feature__description">` + "\n" + b.DescriptionHTML + "\n</div>"
	}
	return fmt.Sprintf(`<div class="col col--4" data-feature="%d">
<div class="text--center">%s</div>
<div class="text--center padding-horiz--md">
<h3>%s</h3>
%s
</div>
</div>
`, b.Index, b.IconHTML, html.EscapeString(b.Title), desc)
}
