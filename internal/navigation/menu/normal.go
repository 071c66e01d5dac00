package menu

import (
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/htmlelement"
	"finitefield.org/hanko-navigation/internal/navigation/page"
)

// normalMenu renders every accepted page between min and max depth, or only
// the active branch with its ancestors in only-active mode.
func (w *menuWriter) normalMenu() string {
	w.found, w.hasFound = w.r.findActive(w.c, w.o.minDepth, w.o.maxDepth, w.o.hasMaxDepth, w.o.role)
	if w.o.onlyActiveBranch && !w.hasFound {
		w.debug("menu: no active page in only-active mode")
		return ""
	}
	if !w.o.depthAllowed(w.o.minDepth) {
		return ""
	}

	roots := w.rootPages(w.c.Pages(), 0)
	if len(roots) == 0 {
		w.debug("menu: nothing accepted", zap.Int("min_depth", w.o.minDepth))
		return ""
	}
	return w.list(roots, w.o.minDepth, w.o.indent, "")
}

// rootPages flattens accepted pages above minDepth away and returns the
// renderable pages at minDepth in document order.
func (w *menuWriter) rootPages(pages []*page.Page, depth int) []*page.Page {
	var out []*page.Page
	for _, p := range pages {
		if !w.r.accept(p, w.o.role, true) {
			continue
		}
		if depth < w.o.minDepth {
			out = append(out, w.rootPages(p.Pages(), depth+1)...)
			continue
		}
		if w.inBranch(p, depth) {
			out = append(out, p)
		}
	}
	return out
}

// children returns the renderable children of p, which sits at depth.
func (w *menuWriter) children(p *page.Page, depth int) []*page.Page {
	if !w.o.depthAllowed(depth + 1) {
		return nil
	}
	var out []*page.Page
	for _, child := range p.Pages() {
		if w.r.accept(child, w.o.role, false) && w.inBranch(child, depth+1) {
			out = append(out, child)
		}
	}
	return out
}

// inBranch applies the only-active filter. Outside only-active mode every
// page is in the branch.
func (w *menuWriter) inBranch(p *page.Page, depth int) bool {
	if !w.o.onlyActiveBranch || p.IsActive(true) {
		return true
	}
	found := w.found.Page
	if p.Parent() == found {
		return true
	}
	if p.Parent() != found.Parent() {
		return false
	}
	// Siblings show when the found page has nothing below it to render.
	if !found.HasPages(!w.r.renderInvisible) {
		return true
	}
	return w.o.hasMaxDepth && w.found.Depth+1 > w.o.maxDepth
}

// list renders pages at depth as one list opened at indent. Nested lists
// point at the toggle that opens them through labelledBy.
func (w *menuWriter) list(pages []*page.Page, depth int, indent, labelledBy string) string {
	top := labelledBy == ""
	var attrs htmlelement.Attributes
	if top {
		attrs = w.topListAttrs()
	} else {
		var dark string
		if w.o.dark {
			dark = "dropdown-menu-dark"
		}
		attrs = htmlelement.Attributes{}.
			Set("class", classes("dropdown-menu", dark)).
			Set("aria-labelledby", labelledBy)
	}

	items := make([]string, 0, len(pages))
	for _, p := range pages {
		items = append(items, w.item(p, depth, indent+indentStep, top))
	}
	return w.block(indent, w.listTag(), attrs, items)
}

// item renders one list item opened at indent.
func (w *menuWriter) item(p *page.Page, depth int, indent string, top bool) string {
	inner := indent + indentStep
	kids := w.children(p, depth)
	dropdown := len(kids) > 0

	attrs := htmlelement.Attributes{}.Set("class", w.liClasses(p, top, dropdown))
	if top && w.o.tabs {
		attrs = attrs.Set("role", "presentation")
	}

	var lines []string
	switch {
	case !dropdown:
		lines = append(lines, inner+w.link(p, top))
	case w.o.sublink == SublinkDetails:
		id := w.toggleID(p)
		summary := inner + indentStep + w.toggle(p, top, id)
		nested := w.list(kids, depth+1, inner+indentStep, id)
		details := htmlelement.Attributes{}.SetBool("open", p.IsActive(true))
		lines = append(lines, w.block(inner, "details", details, []string{summary, nested}))
	default:
		id := w.toggleID(p)
		lines = append(lines, inner+w.toggle(p, top, id), w.list(kids, depth+1, inner, id))
	}
	return w.block(indent, "li", attrs, lines)
}
