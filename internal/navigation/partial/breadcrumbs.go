package partial

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/hanko-navigation/internal/navigation/page"
)

// BreadcrumbsName is the registry name of the built-in breadcrumb partial.
const BreadcrumbsName = "breadcrumbs"

// AcceptKey is the model key of the AcceptFunc that filters partial output.
const AcceptKey = "accept"

// AcceptFunc reports whether a page may appear in partial output.
type AcceptFunc func(p *page.Page) bool

// Breadcrumbs renders the trail from the top-level page down to the deepest
// active page of model["container"] that model["accept"] lets through.
// Nothing is written when no page is active.
func Breadcrumbs(model Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c, _ := model["container"].(*page.Container)
		accept, _ := model[AcceptKey].(AcceptFunc)
		trail := ActiveTrail(c, accept)
		if len(trail) == 0 {
			return nil
		}

		var b strings.Builder
		b.WriteString(`<nav aria-label="breadcrumb"><ol class="breadcrumb">`)
		for i, p := range trail {
			label := templ.EscapeString(p.Label)
			if i == len(trail)-1 {
				b.WriteString(`<li class="breadcrumb-item active" aria-current="page">`)
				b.WriteString(label)
				b.WriteString(`</li>`)
				continue
			}
			b.WriteString(`<li class="breadcrumb-item">`)
			if p.Href != "" {
				b.WriteString(`<a href="`)
				b.WriteString(templ.EscapeString(p.Href))
				b.WriteString(`">`)
				b.WriteString(label)
				b.WriteString(`</a>`)
			} else {
				b.WriteString(label)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ol></nav>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ActiveTrail returns the pages from the top level down to the deepest
// accepted active page. Rejected pages hide their subtree. A nil accept
// keeps visible pages.
func ActiveTrail(c *page.Container, accept AcceptFunc) []*page.Page {
	if accept == nil {
		accept = func(p *page.Page) bool { return p.IsVisible(false) }
	}
	var (
		deepest *page.Page
		depth   = -1
	)
	c.Walk(func(p *page.Page, d int) bool {
		if !accept(p) {
			return false
		}
		if p.IsActive(false) && d > depth {
			deepest = p
			depth = d
		}
		return true
	})
	if deepest == nil {
		return nil
	}
	trail := make([]*page.Page, depth+1)
	for p, i := deepest, depth; p != nil && i >= 0; p, i = p.Parent(), i-1 {
		trail[i] = p
	}
	return trail
}
