package page

import (
	"net/url"
	"strings"
)

// ActivatePath clears every active flag in c and marks the page whose href
// matches the request path. An exact match wins over a prefix match; among
// prefix matches the longest href wins. The root path only matches itself.
// It returns the activated page, or nil when nothing matches.
func ActivatePath(c *Container, path string) *Page {
	current := NormalizeRoute(path)

	var (
		best      *Page
		bestScore = -1
	)
	c.Walk(func(p *Page, _ int) bool {
		p.Active = false
		target, ok := hrefPath(p.Href)
		if !ok {
			return true
		}
		score := matchScore(target, current)
		if score > bestScore {
			best = p
			bestScore = score
		}
		return true
	})
	if best != nil {
		best.Active = true
	}
	return best
}

// PathMatches reports whether the page href covers the request path, either
// exactly or as a prefix on a segment boundary.
func PathMatches(href, path string) bool {
	target, ok := hrefPath(href)
	if !ok {
		return false
	}
	return matchScore(target, NormalizeRoute(path)) >= 0
}

// NormalizeRoute trims the path, forces a leading slash, collapses repeated
// slashes and drops any trailing slash.
func NormalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// matchScore returns -1 for no match, len(target) for a prefix match and a
// value above any prefix score for an exact match.
func matchScore(target, current string) int {
	if target == current {
		return 1 << 20
	}
	if target == "/" {
		return -1
	}
	if strings.HasPrefix(current, target+"/") {
		return len(target)
	}
	return -1
}

func hrefPath(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Host != "" || (u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return NormalizeRoute(u.Path), true
}
