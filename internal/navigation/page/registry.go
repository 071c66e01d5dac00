package page

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrContainerNotFound is returned when a named container is not registered.
var ErrContainerNotFound = errors.New("page: container not found")

// Resolver resolves a container by name.
type Resolver interface {
	Resolve(name string) (*Container, error)
}

// ResolverFunc adapts ordinary functions to Resolver.
type ResolverFunc func(name string) (*Container, error)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (*Container, error) {
	return f(name)
}

// Registry is a concurrency-safe set of named containers.
type Registry struct {
	mu         sync.RWMutex
	containers map[string]*Container
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{containers: make(map[string]*Container)}
}

// Register stores c under name, replacing any previous container.
func (r *Registry) Register(name string, c *Container) {
	name = normaliseName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.containers == nil {
		r.containers = make(map[string]*Container)
	}
	r.containers[name] = c
}

// Resolve returns the container registered under name.
func (r *Registry) Resolve(name string) (*Container, error) {
	key := normaliseName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.containers[key]
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, name)
	}
	return c, nil
}

// Names lists registered container names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.containers))
	for name := range r.containers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
