package menu

import "finitefield.org/hanko-navigation/internal/navigation/page"

// Active is the page found by FindActive together with its depth.
type Active struct {
	Page  *page.Page
	Depth int
}

// FindActive returns the deepest accepted page whose own active flag is set
// and whose depth is at least minDepth. The first such page in document
// order wins ties. A page deeper than maxDepth is replaced by its ancestor at
// maxDepth; nothing is found when that ancestor sits above minDepth. A
// negative maxDepth means unrestricted.
func (r *Renderer) FindActive(c *page.Container, minDepth, maxDepth int) (Active, bool) {
	return r.findActive(r.containerOrDefault(c), minDepth, maxDepth, maxDepth >= 0, r.role)
}

func (r *Renderer) findActive(c *page.Container, minDepth, maxDepth int, hasMax bool, role string) (Active, bool) {
	if c == nil {
		return Active{}, false
	}

	var (
		found      *page.Page
		foundDepth = -1
	)
	c.Walk(func(p *page.Page, depth int) bool {
		if !r.accept(p, role, false) {
			// Children of a rejected page are rejected as well.
			return false
		}
		if depth >= minDepth && p.IsActive(false) && depth > foundDepth {
			found = p
			foundDepth = depth
		}
		return true
	})
	if found == nil {
		return Active{}, false
	}

	for hasMax && foundDepth > maxDepth {
		foundDepth--
		if foundDepth < minDepth {
			return Active{}, false
		}
		found = found.Parent()
		if found == nil {
			return Active{}, false
		}
	}
	return Active{Page: found, Depth: foundDepth}, true
}

// Accept reports whether p may be rendered: it and every ancestor must be
// visible (unless hidden pages are rendered) and authorized.
func (r *Renderer) Accept(p *page.Page) bool {
	return r.accept(p, r.role, true)
}

func (r *Renderer) accept(p *page.Page, role string, recursive bool) bool {
	if p == nil {
		return false
	}
	if !r.renderInvisible && !p.IsVisible(false) {
		return false
	}
	if r.useACL && r.authorizer != nil && (p.Resource != "" || p.Privilege != "") {
		if p.Resource != "" && !r.authorizer.HasResource(p.Resource) {
			return false
		}
		if !r.authorizer.IsAllowed(role, p.Resource, p.Privilege) {
			return false
		}
	}
	if recursive && p.Parent() != nil {
		return r.accept(p.Parent(), role, true)
	}
	return true
}
