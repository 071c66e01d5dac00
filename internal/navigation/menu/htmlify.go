package menu

import (
	"strings"

	"finitefield.org/hanko-navigation/internal/navigation/htmlelement"
	"finitefield.org/hanko-navigation/internal/navigation/page"
)

// Htmlify renders p as a single <a> element, or <span> when it has no href.
// Label and title are translated in the page text domain first; the label is
// then escaped (or sanitized with WithEscapeLabels(false)) and the element
// built with id, title, class, href and target attributes.
func (r *Renderer) Htmlify(p *page.Page, opts ...Option) string {
	if p == nil {
		return ""
	}
	o := r.options(opts)

	label := r.translate(p.Label, p.TextDomain)
	title := r.translate(p.Title, p.TextDomain)
	content := r.escapeLabel(label, o)

	attrs := htmlelement.Attributes{}.Set("id", p.ID).Set("title", title)
	if !o.addClassToListItem {
		attrs = attrs.Set("class", p.Class)
	}

	tag := "span"
	if p.Href != "" {
		tag = "a"
		attrs = attrs.Set("href", p.Href).Set("target", p.Target)
	}
	return r.builder.Build(tag, attrs, content)
}

// label translates and escapes the page label.
func (r *Renderer) label(p *page.Page, o renderOptions) string {
	return r.escapeLabel(r.translate(p.Label, p.TextDomain), o)
}

// escapeLabel escapes label, or sanitizes it when labels are not escaped.
func (r *Renderer) escapeLabel(label string, o renderOptions) string {
	if o.escapeLabels {
		return r.escaper.EscapeHTML(label)
	}
	return r.sanitizer.Sanitize(label)
}

// classes joins non-empty class tokens, dropping duplicates.
func classes(parts ...string) string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		for _, token := range strings.Fields(part) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return strings.Join(out, " ")
}
