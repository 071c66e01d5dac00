// Package page models navigation trees: pages, the containers that hold them,
// and the helpers used to load, activate and resolve them.
package page

// Page is a single node of a navigation tree.
type Page struct {
	Label       string
	Title       string
	Href        string
	ID          string
	Class       string
	Target      string
	LiClass     string
	ActiveClass string
	TextDomain  string
	Resource    string
	Privilege   string

	// Order overrides the insertion position among siblings when set.
	Order *int
	// Hidden removes the page (and its subtree) from rendered output.
	Hidden bool
	Active bool

	Properties map[string]any

	parent   *Page
	holder   *Container
	children Container
}

// Parent returns the page owning p, or nil for top-level pages.
func (p *Page) Parent() *Page {
	if p == nil {
		return nil
	}
	return p.parent
}

// AddPage appends child to p's children, moving it from any previous parent.
func (p *Page) AddPage(child *Page) {
	p.container().AddPage(child)
}

// AddPages appends every child in order.
func (p *Page) AddPages(children ...*Page) {
	p.container().AddPages(children...)
}

// RemovePage detaches child from p. It reports whether child was found.
func (p *Page) RemovePage(child *Page) bool {
	return p.container().RemovePage(child)
}

// Pages returns the children of p in render order.
func (p *Page) Pages() []*Page {
	if p == nil {
		return nil
	}
	return p.container().Pages()
}

// HasPages reports whether p has children. With onlyVisible, hidden children are ignored.
func (p *Page) HasPages(onlyVisible bool) bool {
	if p == nil {
		return false
	}
	return p.container().HasPages(onlyVisible)
}

// HasPage reports whether child is a direct (or, with recursive, any) descendant of p.
func (p *Page) HasPage(child *Page, recursive bool) bool {
	if p == nil {
		return false
	}
	return p.container().HasPage(child, recursive)
}

// IsActive reports the page's own active flag. With recursive, an active
// descendant also makes the page active.
func (p *Page) IsActive(recursive bool) bool {
	if p == nil {
		return false
	}
	if p.Active || !recursive {
		return p.Active
	}
	for _, child := range p.children.pages {
		if child.IsActive(true) {
			return true
		}
	}
	return false
}

// IsVisible reports whether the page is visible. With recursive, every
// ancestor must be visible too.
func (p *Page) IsVisible(recursive bool) bool {
	if p == nil {
		return false
	}
	if recursive && p.parent != nil && !p.parent.IsVisible(true) {
		return false
	}
	return !p.Hidden
}

// Property returns a custom property value.
func (p *Page) Property(key string) (any, bool) {
	if p == nil || p.Properties == nil {
		return nil, false
	}
	v, ok := p.Properties[key]
	return v, ok
}

// StringProperty returns a custom property as string, or "" when missing or not a string.
func (p *Page) StringProperty(key string) string {
	v, ok := p.Property(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetProperty stores a custom property value.
func (p *Page) SetProperty(key string, value any) {
	if p.Properties == nil {
		p.Properties = make(map[string]any)
	}
	p.Properties[key] = value
}

// Clone deep copies p and its subtree. The copy has no parent.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cp := &Page{
		Label:       p.Label,
		Title:       p.Title,
		Href:        p.Href,
		ID:          p.ID,
		Class:       p.Class,
		Target:      p.Target,
		LiClass:     p.LiClass,
		ActiveClass: p.ActiveClass,
		TextDomain:  p.TextDomain,
		Resource:    p.Resource,
		Privilege:   p.Privilege,
		Hidden:      p.Hidden,
		Active:      p.Active,
	}
	if p.Order != nil {
		order := *p.Order
		cp.Order = &order
	}
	if p.Properties != nil {
		cp.Properties = make(map[string]any, len(p.Properties))
		for k, v := range p.Properties {
			cp.Properties[k] = v
		}
	}
	for _, child := range p.children.pages {
		cp.AddPage(child.Clone())
	}
	return cp
}

// Intp is a helper for populating Order in literals.
func Intp(v int) *int {
	return &v
}

func (p *Page) container() *Container {
	p.children.owner = p
	return &p.children
}
