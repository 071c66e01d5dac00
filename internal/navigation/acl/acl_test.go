package acl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleACL(t *testing.T) *ACL {
	t.Helper()

	a := New()
	require.NoError(t, a.AddRole("guest"))
	require.NoError(t, a.AddRole("member", "guest"))
	require.NoError(t, a.AddRole("editor", "member"))
	require.NoError(t, a.AddRole("admin"))
	a.AddResource("home", "account", "content", "system")

	a.Allow("guest", "home")
	a.Allow("member", "account", "view")
	a.Allow("editor", "content")
	a.Deny("editor", "content", "publish")
	a.Allow("admin", "")
	a.Deny("", "system")
	return a
}

func TestIsAllowedMatrix(t *testing.T) {
	t.Parallel()

	a := sampleACL(t)

	tests := []struct {
		name      string
		role      string
		resource  string
		privilege string
		want      bool
	}{
		{name: "guest reads home", role: "guest", resource: "home", want: true},
		{name: "guest cannot view account", role: "guest", resource: "account", privilege: "view", want: false},
		{name: "member views account", role: "member", resource: "account", privilege: "view", want: true},
		{name: "member cannot edit account", role: "member", resource: "account", privilege: "edit", want: false},
		{name: "member inherits guest home", role: "member", resource: "home", privilege: "view", want: true},
		{name: "editor inherits account view", role: " Editor ", resource: "account", privilege: "view", want: true},
		{name: "editor edits content", role: "editor", resource: "content", privilege: "edit", want: true},
		{name: "editor denied publish", role: "editor", resource: "content", privilege: "publish", want: false},
		{name: "admin allowed everywhere", role: "admin", resource: "content", privilege: "publish", want: true},
		{name: "admin own rule beats global deny", role: "admin", resource: "system", want: true},
		{name: "global deny applies to members", role: "member", resource: "system", want: false},
		{name: "unknown role gets nothing", role: "unknown", resource: "home", want: false},
		{name: "empty role gets nothing", role: "", resource: "home", want: false},
		{name: "any listed role grants", role: "guest, editor", resource: "content", privilege: "edit", want: true},
		{name: "deny on one role does not block another", role: "editor,admin", resource: "content", privilege: "publish", want: true},
		{name: "no listed role grants", role: "guest,member", resource: "content", want: false},
		{name: "blank list entries are ignored", role: ",guest,", resource: "home", want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := a.IsAllowed(tc.role, tc.resource, tc.privilege)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestHasResource(t *testing.T) {
	t.Parallel()

	a := sampleACL(t)

	require.True(t, a.HasResource("account"))
	require.False(t, a.HasResource("missing"))
	require.False(t, a.HasResource(""))
}

func TestAddRoleRejectsCycles(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddRole("a"))
	require.NoError(t, a.AddRole("b", "a"))
	require.Error(t, a.AddRole("a", "b"))
	require.True(t, a.Inherits("b", "a"))
	require.False(t, a.Inherits("a", "b"))
	require.Error(t, a.AddRole(" "))
}

func TestNormaliseRoles(t *testing.T) {
	t.Parallel()

	got := NormaliseRoles([]string{" Admin", "admin", "", "OPS"})
	require.Equal(t, Roles{"admin", "ops"}, got)
	require.Nil(t, NormaliseRoles(nil))
	require.Equal(t, Roles{"guest", "admin"}, ParseRoles(" guest,Admin,,guest"))
	require.Empty(t, ParseRoles(""))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	doc := `
roles:
  - name: guest
  - name: member
    parents: [guest]
resources: [account, home]
allow:
  - role: guest
    resource: home
  - role: member
    resource: account
    privileges: [view]
deny:
  - role: member
    resource: home
    privileges: [secret]
`
	a, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	require.True(t, a.IsAllowed("member", "account", "view"))
	require.True(t, a.IsAllowed("member", "home", "view"))
	require.False(t, a.IsAllowed("member", "home", "secret"))
	require.False(t, a.IsAllowed("guest", "account", "view"))
}

func TestLoadRejectsUndeclaredParent(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("roles:\n  - name: member\n    parents: [guest]\n"))
	require.ErrorContains(t, err, "undeclared")
}
