// Package acl implements role based access control lists consulted when
// deciding whether a navigation page may be rendered for a role.
package acl

import (
	"fmt"
	"strings"
	"sync"
)

// Role represents an access tier such as "guest" or "admin".
type Role string

// Roles is an ordered list of roles.
type Roles []Role

// ParseRoles splits a comma separated role list such as "guest,editor".
func ParseRoles(raw string) Roles {
	return NormaliseRoles(strings.Split(raw, ","))
}

// NormaliseRoles converts raw role strings into canonical Role values.
func NormaliseRoles(raw []string) Roles {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	roles := make(Roles, 0, len(raw))
	for _, val := range raw {
		role := NormaliseRole(val)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// NormaliseRole lower-cases and trims a raw role name.
func NormaliseRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

type decision int

const (
	undecided decision = iota
	allowed
	denied
)

// ruleKey identifies a rule. Empty role or privilege act as wildcards.
type ruleKey struct {
	role      Role
	resource  string
	privilege string
}

// ACL holds roles, resources and allow/deny rules. It is safe for concurrent use.
type ACL struct {
	mu        sync.RWMutex
	parents   map[Role]Roles
	resources map[string]struct{}
	rules     map[ruleKey]decision
}

// New returns an empty ACL.
func New() *ACL {
	return &ACL{
		parents:   make(map[Role]Roles),
		resources: make(map[string]struct{}),
		rules:     make(map[ruleKey]decision),
	}
}

// AddRole registers role inheriting from parents, searched in the given order.
// Unknown parents are registered on the fly.
func (a *ACL) AddRole(role Role, parents ...Role) error {
	role = NormaliseRole(string(role))
	if role == "" {
		return fmt.Errorf("acl: role name is empty")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	inherited := make(Roles, 0, len(parents))
	for _, parent := range parents {
		parent = NormaliseRole(string(parent))
		if parent == "" || parent == role {
			continue
		}
		if a.inheritsLocked(parent, role) {
			return fmt.Errorf("acl: role %q cannot inherit from descendant %q", role, parent)
		}
		if _, ok := a.parents[parent]; !ok {
			a.parents[parent] = nil
		}
		inherited = append(inherited, parent)
	}
	a.parents[role] = inherited
	return nil
}

// HasRole reports whether the role is registered.
func (a *ACL) HasRole(role Role) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.parents[NormaliseRole(string(role))]
	return ok
}

// Inherits reports whether role inherits, directly or not, from ancestor.
func (a *ACL) Inherits(role, ancestor Role) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inheritsLocked(NormaliseRole(string(role)), NormaliseRole(string(ancestor)))
}

// AddResource registers resources.
func (a *ACL) AddResource(resources ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range resources {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		a.resources[r] = struct{}{}
	}
}

// HasResource reports whether the resource is registered.
func (a *ACL) HasResource(resource string) bool {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.resources[resource]
	return ok
}

// Allow grants role the privileges on resource. An empty role grants every
// role, an empty resource every resource, and no privileges every privilege.
func (a *ACL) Allow(role Role, resource string, privileges ...string) {
	a.setRule(allowed, role, resource, privileges)
}

// Deny revokes privileges with the same wildcard rules as Allow.
func (a *ACL) Deny(role Role, resource string, privileges ...string) {
	a.setRule(denied, role, resource, privileges)
}

// IsAllowed reports whether role may exercise privilege on resource. role
// may list several comma separated roles, and access is granted when any of
// them is allowed. A role's own rules win over inherited ones; parents are
// searched depth first in declaration order and the first decisive parent
// wins. A later rule replaces an earlier one for the same role, resource and
// privilege.
func (a *ACL) IsAllowed(role, resource, privilege string) bool {
	roles := ParseRoles(role)
	resource = strings.TrimSpace(resource)
	privilege = strings.TrimSpace(privilege)

	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(roles) == 0 {
		return a.decide("", resource, privilege) == allowed
	}
	for _, r := range roles {
		if a.allowedLocked(r, resource, privilege) {
			return true
		}
	}
	return false
}

func (a *ACL) allowedLocked(role Role, resource, privilege string) bool {
	if d := a.decideRole(role, resource, privilege, map[Role]struct{}{}); d != undecided {
		return d == allowed
	}
	return a.decide("", resource, privilege) == allowed
}

func (a *ACL) decideRole(role Role, resource, privilege string, visited map[Role]struct{}) decision {
	if _, ok := visited[role]; ok {
		return undecided
	}
	visited[role] = struct{}{}
	if d := a.decide(role, resource, privilege); d != undecided {
		return d
	}
	for _, parent := range a.parents[role] {
		if d := a.decideRole(parent, resource, privilege, visited); d != undecided {
			return d
		}
	}
	return undecided
}

// decide evaluates rules for a single role from most to least specific.
func (a *ACL) decide(role Role, resource, privilege string) decision {
	candidates := []ruleKey{
		{role: role, resource: resource, privilege: privilege},
		{role: role, resource: resource},
		{role: role, privilege: privilege},
		{role: role},
	}
	for _, key := range candidates {
		if d, ok := a.rules[key]; ok {
			return d
		}
	}
	return undecided
}

func (a *ACL) setRule(d decision, role Role, resource string, privileges []string) {
	role = NormaliseRole(string(role))
	resource = strings.TrimSpace(resource)

	a.mu.Lock()
	defer a.mu.Unlock()
	if role != "" {
		if _, ok := a.parents[role]; !ok {
			a.parents[role] = nil
		}
	}
	if resource != "" {
		a.resources[resource] = struct{}{}
	}
	if len(privileges) == 0 {
		a.rules[ruleKey{role: role, resource: resource}] = d
		return
	}
	for _, privilege := range privileges {
		a.rules[ruleKey{role: role, resource: resource, privilege: strings.TrimSpace(privilege)}] = d
	}
}

func (a *ACL) inheritsLocked(role, ancestor Role) bool {
	for _, parent := range a.parents[role] {
		if parent == ancestor || a.inheritsLocked(parent, ancestor) {
			return true
		}
	}
	return false
}
