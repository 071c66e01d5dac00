package menu

import (
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/htmlelement"
	"finitefield.org/hanko-navigation/internal/navigation/page"
)

// deepestMenu renders one flat list: the children of the active page, or
// its siblings when it has no children or they are too deep.
func (w *menuWriter) deepestMenu() string {
	found, ok := w.r.findActive(w.c, w.o.minDepth-1, w.o.maxDepth, w.o.hasMaxDepth, w.o.role)
	if !ok {
		w.debug("menu: no active page for deepest menu")
		return ""
	}

	hasChildren := found.Page.HasPages(!w.r.renderInvisible)
	var pages []*page.Page
	switch {
	case found.Depth < w.o.minDepth:
		// The active page sits just above minDepth; only its children qualify.
		if !hasChildren {
			return ""
		}
		pages = found.Page.Pages()
	case !hasChildren, w.o.hasMaxDepth && found.Depth+1 > w.o.maxDepth:
		if parent := found.Page.Parent(); parent != nil {
			pages = parent.Pages()
		} else {
			pages = w.c.Pages()
		}
	default:
		pages = found.Page.Pages()
	}

	items := make([]string, 0, len(pages))
	inner := w.o.indent + indentStep
	for _, p := range pages {
		if !w.r.accept(p, w.o.role, true) {
			continue
		}
		attrs := htmlelement.Attributes{}.Set("class", w.liClasses(p, true, false))
		if w.o.tabs {
			attrs = attrs.Set("role", "presentation")
		}
		items = append(items, w.block(inner, "li", attrs, []string{inner + indentStep + w.link(p, true)}))
	}
	if len(items) == 0 {
		w.debug("menu: deepest menu has no accepted pages", zap.Int("depth", found.Depth))
		return ""
	}
	return w.block(w.o.indent, w.listTag(), w.topListAttrs(), items)
}
