package httpserver

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const (
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	bootstrapJS  = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
)

// pageView is the data of a full preview page. The HTML fields are trusted.
type pageView struct {
	Lang           string
	Title          string
	NavHTML        string
	BreadcrumbHTML string
	ContentHTML    string
}

// previewPage renders the document shell around the navbar and page content.
func previewPage(v pageView) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang(v.Lang),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(v.Title)),
				html.Link(html.Rel("stylesheet"), html.Href(bootstrapCSS)),
			),
			html.Body(
				html.Nav(
					html.Class("navbar navbar-expand-lg bg-body-tertiary"),
					html.Div(
						html.Class("container-fluid"),
						g.Raw(v.NavHTML),
					),
				),
				html.Main(
					html.Class("container py-4"),
					g.If(v.BreadcrumbHTML != "", g.Raw(v.BreadcrumbHTML)),
					html.H1(g.Text(v.Title)),
					html.Article(g.Raw(v.ContentHTML)),
				),
				html.Script(html.Src(bootstrapJS)),
			),
		),
	)
}

// contentRenderer turns page Markdown into sanitized HTML.
type contentRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newContentRenderer() *contentRenderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return &contentRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

func (c *contentRenderer) Render(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return c.policy.Sanitize(buf.String()), nil
}
