package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-navigation/internal/testutil"
)

const cliNavigation = `
containers:
  main:
    - label: Home
      uri: /
    - label: Products
      uri: /products
      title: All products
      pages:
        - label: Stamps
          uri: /products/stamps
        - label: Seals
          uri: /products/seals
    - label: Admin
      uri: /admin
      resource: admin
  footer:
    - label: Terms
      uri: /terms
`

const cliACL = `
roles:
  - name: guest
  - name: admin
    parents: [guest]
resources: [admin]
allow:
  - role: admin
    resource: admin
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	nav := writeFile(t, dir, "navigation.yaml", cliNavigation)

	base := []string{"--env-file", filepath.Join(dir, "missing.env"), "--nav", nav, "--log-level", "error"}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(append([]string{args[0]}, base...), args[1:]...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderPrintsMenu(t *testing.T) {
	out, err := runCLI(t, "render", "--active", "/products/stamps", "--max-depth", "0")
	require.NoError(t, err)

	expected := strings.Join([]string{
		`<ul class="nav navigation">`,
		`    <li class="nav-item">`,
		`        <a class="nav-link" href="/">Home</a>`,
		`    </li>`,
		`    <li class="nav-item active">`,
		`        <a title="All products" class="nav-link active" href="/products">Products</a>`,
		`    </li>`,
		`    <li class="nav-item">`,
		`        <a class="nav-link" href="/admin">Admin</a>`,
		`    </li>`,
		`</ul>`,
	}, "\n") + "\n"
	require.Equal(t, expected, out)
}

func TestRenderAppliesOptionFlags(t *testing.T) {
	out, err := runCLI(t, "render", "--active", "/products/seals",
		"--sublink", "button", "--dark", "--tabs", "--ul-class", "main-nav")
	require.NoError(t, err)

	doc := testutil.ParseHTML(t, out)
	list := doc.Find("ul.nav.nav-tabs.main-nav")
	require.Equal(t, 1, list.Length())
	role, _ := list.Attr("role")
	require.Equal(t, "tablist", role)
	require.Equal(t, 1, doc.Find(`button.dropdown-toggle[data-bs-toggle="dropdown"]`).Length())
	require.Equal(t, 1, doc.Find("ul.dropdown-menu.dropdown-menu-dark").Length())
	require.Equal(t, []string{"Stamps", "Seals"}, testutil.Texts(doc, ".dropdown-menu a.dropdown-item"))
}

func TestRenderSubMenu(t *testing.T) {
	out, err := runCLI(t, "render", "--container", "main", "--active", "/products/seals", "--submenu", "--ul-class", "side")
	require.NoError(t, err)

	doc := testutil.ParseHTML(t, out)
	require.Equal(t, []string{"Stamps", "Seals"}, testutil.Texts(doc, "ul.nav.side > li > a"))
}

func TestRenderBreadcrumbsPartial(t *testing.T) {
	out, err := runCLI(t, "render", "--active", "/products/stamps", "--partial", "breadcrumbs")
	require.NoError(t, err)

	doc := testutil.ParseHTML(t, out)
	require.Equal(t, []string{"Products", "Stamps"}, testutil.Texts(doc, "ol.breadcrumb > li"))
}

func TestRenderStrictEscaping(t *testing.T) {
	out, err := runCLI(t, "render", "--container", "footer", "--strict-escaping")
	require.NoError(t, err)

	require.Contains(t, out, `href="&#x2F;terms"`)
}

func TestRenderWithACLHidesRestrictedPages(t *testing.T) {
	dir := t.TempDir()
	aclFile := writeFile(t, dir, "acl.yaml", cliACL)
	t.Setenv("NAVMENU_ACL_FILE", aclFile)

	out, err := runCLI(t, "render", "--max-depth", "0")
	require.NoError(t, err)
	doc := testutil.ParseHTML(t, out)
	require.Equal(t, []string{"Home", "Products"}, testutil.Texts(doc, "ul.nav > li > a"))

	for _, role := range []string{"admin", "guest,admin"} {
		out, err = runCLI(t, "render", "--max-depth", "0", "--role", role)
		require.NoError(t, err)
		doc = testutil.ParseHTML(t, out)
		require.Equal(t, []string{"Home", "Products", "Admin"}, testutil.Texts(doc, "ul.nav > li > a"), role)
	}
}

func TestRenderRejectsInvalidOption(t *testing.T) {
	_, err := runCLI(t, "render", "--style", "zigzag")
	require.Error(t, err)
	require.Contains(t, err.Error(), "style")
}

func TestRenderUnknownContainer(t *testing.T) {
	_, err := runCLI(t, "render", "--container", "sidebar")
	require.Error(t, err)
}

func TestRenderRequiresNavigationFile(t *testing.T) {
	t.Setenv("NAVMENU_NAV_FILE", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--env-file", filepath.Join(t.TempDir(), "missing.env")})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Navigation.File")
}
