package partial

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-navigation/internal/navigation/page"
)

func TestRegistryRendersComponent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("hello", func(model Model) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "hello "+model["name"].(string))
			return err
		})
	})

	var buf bytes.Buffer
	require.NoError(t, r.RenderPartial(context.Background(), &buf, "hello", Model{"name": "menu"}))
	require.Equal(t, "hello menu", buf.String())
	require.Equal(t, []string{"breadcrumbs", "hello"}, r.Names())

	err := r.RenderPartial(context.Background(), &buf, "missing", nil)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestTemplatesRenderByFileName(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"menu.html": {Data: []byte(`<p>{{ len .container.Pages }} pages {{ .extra }}</p>`)},
	}
	tmpls, err := ParseFS(fsys, nil)
	require.NoError(t, err)

	c := page.NewContainer(&page.Page{Label: "a"}, &page.Page{Label: "b"})

	var buf bytes.Buffer
	require.NoError(t, tmpls.RenderPartial(context.Background(), &buf, "menu.html", Model{"container": c, "extra": "<x>"}))
	require.Equal(t, "<p>2 pages &lt;x&gt;</p>", buf.String())

	err = tmpls.RenderPartial(context.Background(), &buf, "other.html", nil)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestChainFallsThroughNotFound(t *testing.T) {
	t.Parallel()

	tmpls, err := ParseFS(fstest.MapFS{"x.html": {Data: []byte(`x`)}}, nil)
	require.NoError(t, err)
	chain := Chain{NewRegistry(), tmpls}

	var buf bytes.Buffer
	require.NoError(t, chain.RenderPartial(context.Background(), &buf, "x.html", Model{}))
	require.Equal(t, "x", buf.String())

	err = chain.RenderPartial(context.Background(), &buf, "y.html", Model{})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestBreadcrumbsRendersActiveTrail(t *testing.T) {
	t.Parallel()

	orders := &page.Page{Label: "Orders & Returns", Href: "/account/orders", Active: true}
	account := &page.Page{Label: "Account", Href: "/account"}
	account.AddPage(orders)
	c := page.NewContainer(&page.Page{Label: "Home", Href: "/"}, account)

	var buf bytes.Buffer
	require.NoError(t, Breadcrumbs(Model{"container": c}).Render(context.Background(), &buf))
	require.Equal(t,
		`<nav aria-label="breadcrumb"><ol class="breadcrumb">`+
			`<li class="breadcrumb-item"><a href="/account">Account</a></li>`+
			`<li class="breadcrumb-item active" aria-current="page">Orders &amp; Returns</li>`+
			`</ol></nav>`,
		buf.String())

	orders.Active = false
	buf.Reset()
	require.NoError(t, Breadcrumbs(Model{"container": c}).Render(context.Background(), &buf))
	require.Empty(t, buf.String())
}

func TestBreadcrumbsSkipsRejectedPages(t *testing.T) {
	t.Parallel()

	secret := &page.Page{Label: "Secret", Href: "/admin/secret", Active: true}
	admin := &page.Page{Label: "Admin", Href: "/admin", Resource: "admin"}
	admin.AddPage(secret)
	c := page.NewContainer(&page.Page{Label: "Home", Href: "/"}, admin)

	deny := AcceptFunc(func(p *page.Page) bool { return p.Resource == "" })

	var buf bytes.Buffer
	require.NoError(t, Breadcrumbs(Model{"container": c, AcceptKey: deny}).Render(context.Background(), &buf))
	require.Empty(t, buf.String())

	require.Equal(t, []*page.Page{admin, secret}, ActiveTrail(c, nil))
}
