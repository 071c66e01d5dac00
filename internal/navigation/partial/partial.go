// Package partial renders named view partials for menus, backed by templ
// components or html/template files.
package partial

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// ErrNotFound is returned when no partial is registered under the requested name.
var ErrNotFound = errors.New("partial: template not found")

// Model carries the variables handed to a partial. Menu renderers always set "container".
type Model map[string]any

// Renderer renders a named partial with a model.
type Renderer interface {
	RenderPartial(ctx context.Context, w io.Writer, name string, model Model) error
}

// ComponentFunc builds a templ component for a model.
type ComponentFunc func(model Model) templ.Component

// Registry renders partials from registered templ components.
type Registry struct {
	mu         sync.RWMutex
	components map[string]ComponentFunc
}

// NewRegistry returns a registry pre-populated with the built-in partials.
func NewRegistry() *Registry {
	r := &Registry{components: make(map[string]ComponentFunc)}
	r.Register(BreadcrumbsName, Breadcrumbs)
	return r
}

// Register stores fn under name, replacing any previous component.
func (r *Registry) Register(name string, fn ComponentFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.components == nil {
		r.components = make(map[string]ComponentFunc)
	}
	r.components[normaliseName(name)] = fn
}

// Names lists the registered partials.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.components))
	for name := range r.components {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RenderPartial renders the component registered under name.
func (r *Registry) RenderPartial(ctx context.Context, w io.Writer, name string, model Model) error {
	r.mu.RLock()
	fn, ok := r.components[normaliseName(name)]
	r.mu.RUnlock()
	if !ok || fn == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return fn(model).Render(ctx, w)
}

// Templates renders partials from parsed html/template files. Templates are
// addressed by file base name ("menu.html") or by any {{define}} name.
type Templates struct {
	tmpl *template.Template
}

// ParseFS parses every file matching patterns in fsys.
func ParseFS(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*Templates, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.html"}
	}
	tmpl, err := template.New("_root").Funcs(funcs).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("partial: parse templates: %w", err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// RenderPartial executes the named template with model.
func (t *Templates) RenderPartial(_ context.Context, w io.Writer, name string, model Model) error {
	if t == nil || t.tmpl == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	tmpl := t.tmpl.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return tmpl.Execute(w, map[string]any(model))
}

// Chain tries each renderer in order, moving on when a renderer reports ErrNotFound.
type Chain []Renderer

// RenderPartial renders with the first renderer that knows name.
func (c Chain) RenderPartial(ctx context.Context, w io.Writer, name string, model Model) error {
	for _, r := range c {
		if r == nil {
			continue
		}
		err := r.RenderPartial(ctx, w, name, model)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

func normaliseName(name string) string {
	return strings.TrimSpace(name)
}
