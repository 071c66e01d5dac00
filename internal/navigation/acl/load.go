package acl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type aclDocument struct {
	Roles []struct {
		Name    string   `yaml:"name"`
		Parents []string `yaml:"parents"`
	} `yaml:"roles"`
	Resources []string       `yaml:"resources"`
	Allow     []ruleDocument `yaml:"allow"`
	Deny      []ruleDocument `yaml:"deny"`
}

type ruleDocument struct {
	Role       string   `yaml:"role"`
	Resource   string   `yaml:"resource"`
	Privileges []string `yaml:"privileges"`
}

// Load builds an ACL from a YAML document:
//
//	roles:
//	  - name: guest
//	  - name: member
//	    parents: [guest]
//	resources: [account]
//	allow:
//	  - role: member
//	    resource: account
//	    privileges: [view]
//	deny: []
//
// Roles must be declared before they are used as parents.
func Load(r io.Reader) (*ACL, error) {
	var doc aclDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("acl: decode: %w", err)
	}

	a := New()
	for _, role := range doc.Roles {
		parents := make([]Role, 0, len(role.Parents))
		for _, parent := range role.Parents {
			if !a.HasRole(Role(parent)) {
				return nil, fmt.Errorf("acl: role %q inherits from undeclared role %q", role.Name, parent)
			}
			parents = append(parents, Role(parent))
		}
		if err := a.AddRole(Role(role.Name), parents...); err != nil {
			return nil, err
		}
	}
	a.AddResource(doc.Resources...)
	for _, rule := range doc.Allow {
		a.Allow(Role(rule.Role), rule.Resource, rule.Privileges...)
	}
	for _, rule := range doc.Deny {
		a.Deny(Role(rule.Role), rule.Resource, rule.Privileges...)
	}
	return a, nil
}

// LoadFile reads an ACL document from disk.
func LoadFile(path string) (*ACL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("acl: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
