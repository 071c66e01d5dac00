package page

import "sort"

// Container holds an ordered forest of pages. The zero value is an empty root container.
type Container struct {
	owner *Page
	pages []*Page
}

// NewContainer returns a root container holding pages in insertion order.
func NewContainer(pages ...*Page) *Container {
	c := &Container{}
	c.AddPages(pages...)
	return c
}

// AddPage appends p. A page already held by another container, root or page,
// is detached from it first. Adding the owner or one of its ancestors is a no-op.
func (c *Container) AddPage(p *Page) {
	if c == nil || p == nil || c.contains(p) {
		return
	}
	for ancestor := c.owner; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == p {
			return
		}
	}
	if p.holder != nil {
		p.holder.RemovePage(p)
	}
	p.parent = c.owner
	p.holder = c
	c.pages = append(c.pages, p)
}

// AddPages appends every page in order.
func (c *Container) AddPages(pages ...*Page) {
	for _, p := range pages {
		c.AddPage(p)
	}
}

// RemovePage detaches p. It reports whether p was a direct child.
func (c *Container) RemovePage(p *Page) bool {
	if c == nil || p == nil {
		return false
	}
	for i, candidate := range c.pages {
		if candidate == p {
			c.pages = append(c.pages[:i], c.pages[i+1:]...)
			p.parent = nil
			p.holder = nil
			return true
		}
	}
	return false
}

// Len returns the number of direct children.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}

// Pages returns the direct children in render order. Pages without an explicit
// Order keep their insertion index as sort key.
func (c *Container) Pages() []*Page {
	if c == nil || len(c.pages) == 0 {
		return nil
	}
	type keyed struct {
		page *Page
		key  int
	}
	entries := make([]keyed, 0, len(c.pages))
	ordered := false
	index := 0
	for _, p := range c.pages {
		if p.Order != nil {
			ordered = true
			entries = append(entries, keyed{page: p, key: *p.Order})
			continue
		}
		entries = append(entries, keyed{page: p, key: index})
		index++
	}
	if ordered {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})
	}
	out := make([]*Page, len(entries))
	for i, e := range entries {
		out[i] = e.page
	}
	return out
}

// HasPages reports whether the container holds pages. With onlyVisible, hidden pages are ignored.
func (c *Container) HasPages(onlyVisible bool) bool {
	if c == nil {
		return false
	}
	if !onlyVisible {
		return len(c.pages) > 0
	}
	for _, p := range c.pages {
		if !p.Hidden {
			return true
		}
	}
	return false
}

// HasPage reports whether p is a direct child, or any descendant with recursive.
func (c *Container) HasPage(p *Page, recursive bool) bool {
	if c == nil || p == nil {
		return false
	}
	if c.contains(p) {
		return true
	}
	if !recursive {
		return false
	}
	for _, child := range c.pages {
		if child.HasPage(p, true) {
			return true
		}
	}
	return false
}

// Walk visits pages depth first in render order. Depth starts at 0 for direct
// children. Returning false from fn skips the page's children.
func (c *Container) Walk(fn func(p *Page, depth int) bool) {
	if c == nil {
		return
	}
	walk(c.Pages(), 0, fn)
}

func walk(pages []*Page, depth int, fn func(p *Page, depth int) bool) {
	for _, p := range pages {
		if fn(p, depth) {
			walk(p.Pages(), depth+1, fn)
		}
	}
}

// FindBy returns the first page, in walk order, matching fn.
func (c *Container) FindBy(fn func(p *Page) bool) *Page {
	var found *Page
	c.Walk(func(p *Page, _ int) bool {
		if found != nil {
			return false
		}
		if fn(p) {
			found = p
			return false
		}
		return true
	})
	return found
}

// FindAllBy returns every page, in walk order, matching fn.
func (c *Container) FindAllBy(fn func(p *Page) bool) []*Page {
	var out []*Page
	c.Walk(func(p *Page, _ int) bool {
		if fn(p) {
			out = append(out, p)
		}
		return true
	})
	return out
}

// FindByID returns the first page with the given id.
func (c *Container) FindByID(id string) *Page {
	if id == "" {
		return nil
	}
	return c.FindBy(func(p *Page) bool { return p.ID == id })
}

// FindByHref returns the first page linking to href.
func (c *Container) FindByHref(href string) *Page {
	if href == "" {
		return nil
	}
	return c.FindBy(func(p *Page) bool { return p.Href == href })
}

// Clone deep copies the container as a new root container.
func (c *Container) Clone() *Container {
	out := &Container{}
	if c == nil {
		return out
	}
	for _, p := range c.pages {
		out.AddPage(p.Clone())
	}
	return out
}

func (c *Container) contains(p *Page) bool {
	for _, candidate := range c.pages {
		if candidate == p {
			return true
		}
	}
	return false
}
