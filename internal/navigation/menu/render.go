package menu

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/htmlelement"
	"finitefield.org/hanko-navigation/internal/navigation/page"
)

const indentStep = "    "

// RenderMenu renders c (the default container when nil) as a nav list.
// Only-active-branch mode without parents renders the flat deepest menu.
// An empty string with a nil error means there was nothing to render.
func (r *Renderer) RenderMenu(c *page.Container, opts ...Option) (string, error) {
	o := r.options(opts)
	if err := o.validate(); err != nil {
		return "", err
	}
	c = r.containerOrDefault(c)
	if c == nil {
		r.logger.Debug("menu: no container to render")
		return "", nil
	}

	w := &menuWriter{r: r, o: o, c: c}
	if o.onlyActiveBranch && !o.renderParents {
		return w.deepestMenu(), nil
	}
	return w.normalMenu(), nil
}

// Render renders c with the renderer defaults.
func (r *Renderer) Render(c *page.Container) (string, error) {
	return r.RenderMenu(c)
}

// RenderSubMenu renders the active branch of c without its parents and
// without depth bounds. Further options apply before the forced ones.
func (r *Renderer) RenderSubMenu(c *page.Container, ulClass, indent, liActiveClass string, opts ...Option) (string, error) {
	forced := append(append([]Option(nil), opts...),
		WithIndent(indent),
		WithUlClass(ulClass),
		WithMinDepth(0),
		WithoutMaxDepth(),
		WithOnlyActiveBranch(true),
		WithRenderParents(false),
		WithEscapeLabels(true),
		WithAddClassToListItem(false),
		WithLiActiveClass(liActiveClass),
	)
	return r.RenderMenu(c, forced...)
}

// menuWriter carries the state of one render call.
type menuWriter struct {
	r *Renderer
	o renderOptions
	c *page.Container

	found    Active
	hasFound bool
	nextID   int
	usedIDs  map[string]struct{}
}

func (w *menuWriter) listTag() string {
	return string(w.o.style)
}

// topListAttrs decorates the outermost list.
func (w *menuWriter) topListAttrs() htmlelement.Attributes {
	base := "nav"
	if w.o.inNavbar {
		base = "navbar-nav"
	}
	var tabs, pills, fill, justified string
	if w.o.tabs {
		tabs = "nav-tabs"
	}
	if w.o.pills {
		pills = "nav-pills"
	}
	if w.o.fill {
		fill = "nav-fill"
	}
	if w.o.justified {
		justified = "nav-justified"
	}
	attrs := htmlelement.Attributes{}.
		Set("class", classes(base, tabs, pills, fill, justified, verticalClass(w.o.vertical), w.o.ulClass))
	if w.o.tabs {
		attrs = attrs.Set("role", "tablist")
	}
	return attrs
}

// liClasses returns the list item classes shared by every level.
func (w *menuWriter) liClasses(p *page.Page, top, dropdown bool) string {
	var navItem, direction, active, pageClass string
	if top {
		navItem = "nav-item"
	}
	if dropdown {
		direction = directionClasses[w.o.direction]
	}
	if p.IsActive(true) {
		active = w.o.liActiveClass
		if p.ActiveClass != "" {
			active = p.ActiveClass
		}
	}
	if w.o.addClassToListItem {
		pageClass = p.Class
	}
	return classes(navItem, direction, active, p.LiClass, pageClass, w.o.liClass)
}

// linkClasses returns the classes for a page element. Dropdown toggles get
// dropdown-toggle unless rendered as a details summary.
func (w *menuWriter) linkClasses(p *page.Page, top, toggle bool) string {
	base := "dropdown-item"
	if top {
		base = "nav-link"
	}
	var pageClass, toggleClass, active string
	if !w.o.addClassToListItem {
		pageClass = p.Class
	}
	if toggle && w.o.sublink != SublinkDetails {
		toggleClass = "dropdown-toggle"
	}
	if p.IsActive(true) {
		active = "active"
	}
	return classes(base, pageClass, toggleClass, active)
}

// link renders the element of a page without rendered children.
func (w *menuWriter) link(p *page.Page, top bool) string {
	attrs := htmlelement.Attributes{}.
		Set("id", p.ID).
		Set("title", w.r.translate(p.Title, p.TextDomain)).
		Set("class", w.linkClasses(p, top, false))

	tag := "span"
	if p.Href != "" {
		tag = "a"
		attrs = attrs.Set("href", p.Href).Set("target", p.Target)
	}
	if p.IsActive(false) {
		attrs = attrs.Set("aria-current", "page")
	}
	if top && w.o.tabs {
		attrs = attrs.Set("role", "tab").Set("aria-selected", strconv.FormatBool(p.IsActive(true)))
	}
	return w.r.builder.Build(tag, attrs, w.r.label(p, w.o))
}

// toggle renders the element of a page that opens a dropdown.
func (w *menuWriter) toggle(p *page.Page, top bool, id string) string {
	attrs := htmlelement.Attributes{}.
		Set("id", id).
		Set("title", w.r.translate(p.Title, p.TextDomain)).
		Set("class", w.linkClasses(p, top, true))

	var tag string
	switch w.o.sublink {
	case SublinkDetails:
		return w.r.builder.Build("summary", attrs, w.r.label(p, w.o))
	case SublinkButton:
		tag = "button"
		attrs = attrs.Set("type", "button")
	case SublinkSpan:
		tag = "span"
		attrs = attrs.Set("role", "button")
	default:
		tag = "a"
		href := p.Href
		if href == "" {
			href = "#"
		}
		attrs = attrs.Set("href", href).Set("target", p.Target).Set("role", "button")
	}
	attrs = attrs.Set("data-bs-toggle", "dropdown").Set("aria-expanded", "false")
	if p.IsActive(false) {
		attrs = attrs.Set("aria-current", "page")
	}
	return w.r.builder.Build(tag, attrs, w.r.label(p, w.o))
}

// toggleID returns the page id, or generates one unique within the render.
func (w *menuWriter) toggleID(p *page.Page) string {
	if p.ID != "" {
		return p.ID
	}
	if w.usedIDs == nil {
		w.usedIDs = make(map[string]struct{})
		w.c.Walk(func(p *page.Page, _ int) bool {
			if p.ID != "" {
				w.usedIDs[p.ID] = struct{}{}
			}
			return true
		})
	}
	for {
		w.nextID++
		id := "menu-" + strconv.Itoa(w.nextID)
		if _, taken := w.usedIDs[id]; !taken {
			return id
		}
	}
}

// block wraps already indented lines in an element opened and closed at indent.
func (w *menuWriter) block(indent, tag string, attrs htmlelement.Attributes, lines []string) string {
	content := "\n" + strings.Join(lines, "\n") + "\n" + indent
	return indent + w.r.builder.Build(tag, attrs, content)
}

func (w *menuWriter) debug(msg string, fields ...zap.Field) {
	w.r.logger.Debug(msg, fields...)
}
