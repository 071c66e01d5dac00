package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(pages []*Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Label)
	}
	return out
}

func TestPagesKeepInsertionOrderWithoutExplicitOrder(t *testing.T) {
	t.Parallel()

	c := NewContainer(&Page{Label: "a"}, &Page{Label: "b"}, &Page{Label: "c"})

	require.Equal(t, []string{"a", "b", "c"}, labels(c.Pages()))
}

func TestPagesHonourExplicitOrder(t *testing.T) {
	t.Parallel()

	// Unordered pages take their insertion index (0, 1) as key.
	c := NewContainer(
		&Page{Label: "first"},
		&Page{Label: "late", Order: Intp(5)},
		&Page{Label: "second"},
		&Page{Label: "early", Order: Intp(-1)},
	)

	require.Equal(t, []string{"early", "first", "second", "late"}, labels(c.Pages()))
}

func TestAddPageSetsParentAndMovesBetweenParents(t *testing.T) {
	t.Parallel()

	a := &Page{Label: "a"}
	b := &Page{Label: "b"}
	child := &Page{Label: "child"}

	a.AddPage(child)
	require.Same(t, a, child.Parent())
	require.True(t, a.HasPage(child, false))

	b.AddPage(child)
	require.Same(t, b, child.Parent())
	require.False(t, a.HasPage(child, false), "child must be detached from previous parent")

	b.AddPage(child)
	require.Len(t, b.Pages(), 1, "adding twice must not duplicate")
}

func TestAddPageMovesTopLevelPageOutOfRoot(t *testing.T) {
	t.Parallel()

	a := &Page{Label: "a"}
	b := &Page{Label: "b"}
	c := NewContainer(a, b)

	a.AddPage(b)

	require.Equal(t, []string{"a"}, labels(c.Pages()))
	require.Equal(t, []string{"b"}, labels(a.Pages()))
	require.Same(t, a, b.Parent())

	c.AddPage(b)
	require.Equal(t, []string{"a", "b"}, labels(c.Pages()))
	require.Empty(t, a.Pages())
	require.Nil(t, b.Parent())
}

func TestAddPageRejectsCycles(t *testing.T) {
	t.Parallel()

	a := &Page{Label: "a"}
	b := &Page{Label: "b"}
	leaf := &Page{Label: "leaf", Active: true}
	a.AddPage(b)
	b.AddPage(leaf)

	b.AddPage(a)
	leaf.AddPage(a)
	a.AddPage(a)

	require.Nil(t, a.Parent())
	require.Equal(t, []string{"b"}, labels(a.Pages()))
	require.Equal(t, []string{"leaf"}, labels(b.Pages()))
	require.Empty(t, leaf.Pages())
	require.True(t, a.IsActive(true))

	var visited []string
	NewContainer(a).Walk(func(p *Page, _ int) bool {
		visited = append(visited, p.Label)
		return true
	})
	require.Equal(t, []string{"a", "b", "leaf"}, visited)
}

func TestActiveAndVisibleRecursion(t *testing.T) {
	t.Parallel()

	leaf := &Page{Label: "leaf", Active: true}
	mid := &Page{Label: "mid"}
	root := &Page{Label: "root", Hidden: true}
	mid.AddPage(leaf)
	root.AddPage(mid)

	require.False(t, root.IsActive(false))
	require.True(t, root.IsActive(true))
	require.True(t, mid.IsActive(true))

	require.True(t, leaf.IsVisible(false))
	require.False(t, leaf.IsVisible(true), "hidden ancestor hides descendants")
}

func TestHasPagesOnlyVisible(t *testing.T) {
	t.Parallel()

	p := &Page{Label: "p"}
	p.AddPage(&Page{Label: "hidden", Hidden: true})

	require.True(t, p.HasPages(false))
	require.False(t, p.HasPages(true))
}

func TestWalkReportsDepthAndCanPrune(t *testing.T) {
	t.Parallel()

	a := &Page{Label: "a"}
	a1 := &Page{Label: "a1"}
	a11 := &Page{Label: "a11"}
	a1.AddPage(a11)
	a.AddPage(a1)
	b := &Page{Label: "b"}
	b.AddPage(&Page{Label: "b1"})
	c := NewContainer(a, b)

	var seen []string
	c.Walk(func(p *Page, depth int) bool {
		seen = append(seen, strings.Repeat("-", depth)+p.Label)
		return p.Label != "b"
	})

	require.Equal(t, []string{"a", "-a1", "--a11", "b"}, seen)
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	target := &Page{Label: "target", ID: "t", Href: "/t"}
	parent := &Page{Label: "parent"}
	parent.AddPage(target)
	c := NewContainer(parent)

	require.Same(t, target, c.FindByID("t"))
	require.Same(t, target, c.FindByHref("/t"))
	require.Nil(t, c.FindByID("missing"))
	require.True(t, c.HasPage(target, true))
	require.False(t, c.HasPage(target, false))
	require.Len(t, c.FindAllBy(func(p *Page) bool { return p.Label != "" }), 2)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	child := &Page{Label: "child", Order: Intp(2), Properties: map[string]any{"k": "v"}}
	root := &Page{Label: "root"}
	root.AddPage(child)
	c := NewContainer(root)

	cp := c.Clone()
	cpRoot := cp.Pages()[0]
	cpChild := cpRoot.Pages()[0]

	require.NotSame(t, root, cpRoot)
	require.Same(t, cpRoot, cpChild.Parent())
	require.Nil(t, cpRoot.Parent())

	cpChild.Active = true
	*cpChild.Order = 9
	cpChild.SetProperty("k", "changed")

	require.False(t, child.Active)
	require.Equal(t, 2, *child.Order)
	require.Equal(t, "v", child.StringProperty("k"))
}

func TestRemovePage(t *testing.T) {
	t.Parallel()

	p := &Page{Label: "p"}
	c := NewContainer(p)

	require.True(t, c.RemovePage(p))
	require.False(t, c.RemovePage(p))
	require.Equal(t, 0, c.Len())
}
