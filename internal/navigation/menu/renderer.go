// Package menu renders navigation containers as Bootstrap nav markup.
//
// A Renderer holds collaborators and instance defaults; every render call
// takes functional options that override those defaults for that call only.
// Renderers are safe for concurrent renders as long as no mutator runs at
// the same time.
package menu

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/escape"
	"finitefield.org/hanko-navigation/internal/navigation/htmlelement"
	"finitefield.org/hanko-navigation/internal/navigation/page"
	"finitefield.org/hanko-navigation/internal/navigation/partial"
)

const (
	defaultUlClass       = "navigation"
	defaultLiActiveClass = "active"
)

// Translator translates a message within a text domain.
type Translator interface {
	Translate(message, domain string) string
}

// Authorizer decides whether a role may see a page resource.
type Authorizer interface {
	HasResource(resource string) bool
	IsAllowed(role, resource, privilege string) bool
}

// Sanitizer cleans labels that are rendered without escaping.
type Sanitizer interface {
	Sanitize(s string) string
}

// Config wires a Renderer. Zero values fall back to no-op or standard
// collaborators; nil MaxDepth means unrestricted and nil RenderParents means true.
type Config struct {
	Container  *page.Container
	Resolver   page.Resolver
	Translator Translator
	Escaper    escape.Escaper
	Builder    htmlelement.Builder
	Authorizer Authorizer
	Sanitizer  Sanitizer
	Partials   partial.Renderer
	Partial    PartialSpec
	Logger     *zap.Logger

	Role            string
	UseACL          bool
	RenderInvisible bool

	MaxDepth           *int
	MinDepth           int
	Indent             string
	UlClass            string
	LiActiveClass      string
	OnlyActiveBranch   bool
	RenderParents      *bool
	AddClassToListItem bool
}

// Renderer renders menus, sub menus, partials and single pages.
type Renderer struct {
	container  *page.Container
	resolver   page.Resolver
	translator Translator
	escaper    escape.Escaper
	builder    htmlelement.Builder
	authorizer Authorizer
	sanitizer  Sanitizer
	partials   partial.Renderer
	partial    PartialSpec
	logger     *zap.Logger

	role            string
	useACL          bool
	renderInvisible bool

	maxDepth           int
	hasMaxDepth        bool
	minDepth           int
	indent             string
	ulClass            string
	liActiveClass      string
	onlyActiveBranch   bool
	renderParents      bool
	addClassToListItem bool
}

// New constructs a Renderer from cfg.
func New(cfg Config) *Renderer {
	r := &Renderer{
		container:          cfg.Container,
		resolver:           cfg.Resolver,
		translator:         cfg.Translator,
		escaper:            cfg.Escaper,
		builder:            cfg.Builder,
		authorizer:         cfg.Authorizer,
		sanitizer:          cfg.Sanitizer,
		partials:           cfg.Partials,
		partial:            cfg.Partial,
		logger:             cfg.Logger,
		role:               cfg.Role,
		useACL:             cfg.UseACL,
		renderInvisible:    cfg.RenderInvisible,
		minDepth:           cfg.MinDepth,
		indent:             cfg.Indent,
		ulClass:            cfg.UlClass,
		liActiveClass:      cfg.LiActiveClass,
		onlyActiveBranch:   cfg.OnlyActiveBranch,
		renderParents:      true,
		addClassToListItem: cfg.AddClassToListItem,
	}
	if cfg.MaxDepth != nil {
		r.SetMaxDepth(*cfg.MaxDepth)
	}
	if cfg.RenderParents != nil {
		r.renderParents = *cfg.RenderParents
	}
	if r.escaper == nil {
		r.escaper = escape.Standard{}
	}
	if r.builder == nil {
		r.builder = htmlelement.New(r.escaper)
	}
	if r.sanitizer == nil {
		r.sanitizer = bluemonday.UGCPolicy()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.ulClass == "" {
		r.ulClass = defaultUlClass
	}
	if r.liActiveClass == "" {
		r.liActiveClass = defaultLiActiveClass
	}
	return r
}

// Lookup resolves a container by name. An empty name yields the configured container.
func (r *Renderer) Lookup(name string) (*page.Container, error) {
	if strings.TrimSpace(name) == "" {
		if r.container == nil {
			return nil, fmt.Errorf("menu: no default container: %w", page.ErrContainerNotFound)
		}
		return r.container, nil
	}
	if r.resolver == nil {
		return nil, ErrNoResolver
	}
	c, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("menu: resolve %q: %w", name, err)
	}
	return c, nil
}

func (r *Renderer) containerOrDefault(c *page.Container) *page.Container {
	if c != nil {
		return c
	}
	return r.container
}

// Container returns the default container.
func (r *Renderer) Container() *page.Container { return r.container }

// SetContainer replaces the default container.
func (r *Renderer) SetContainer(c *page.Container) { r.container = c }

// MaxDepth returns the default max depth and whether one is set.
func (r *Renderer) MaxDepth() (int, bool) { return r.maxDepth, r.hasMaxDepth }

// SetMaxDepth bounds rendering to depth n by default. Negative values clear the bound.
func (r *Renderer) SetMaxDepth(n int) {
	if n < 0 {
		r.ClearMaxDepth()
		return
	}
	r.maxDepth = n
	r.hasMaxDepth = true
}

// ClearMaxDepth removes the default max depth.
func (r *Renderer) ClearMaxDepth() {
	r.maxDepth = 0
	r.hasMaxDepth = false
}

// MinDepth returns the default min depth.
func (r *Renderer) MinDepth() int { return r.minDepth }

// SetMinDepth sets the default min depth.
func (r *Renderer) SetMinDepth(n int) { r.minDepth = n }

// Role returns the role used for authorization.
func (r *Renderer) Role() string { return r.role }

// SetRole sets the role used for authorization.
func (r *Renderer) SetRole(role string) { r.role = role }

// UseACL reports whether pages are checked against the authorizer.
func (r *Renderer) UseACL() bool { return r.useACL }

// SetUseACL toggles authorization checks.
func (r *Renderer) SetUseACL(on bool) { r.useACL = on }

// Authorizer returns the configured authorizer.
func (r *Renderer) Authorizer() Authorizer { return r.authorizer }

// SetAuthorizer replaces the authorizer.
func (r *Renderer) SetAuthorizer(a Authorizer) { r.authorizer = a }

// SetTranslator replaces the translator.
func (r *Renderer) SetTranslator(t Translator) { r.translator = t }

// RenderInvisible reports whether hidden pages are rendered.
func (r *Renderer) RenderInvisible() bool { return r.renderInvisible }

// SetRenderInvisible toggles rendering of hidden pages.
func (r *Renderer) SetRenderInvisible(on bool) { r.renderInvisible = on }

// Indent returns the default line prefix.
func (r *Renderer) Indent() string { return r.indent }

// SetIndent sets the default line prefix.
func (r *Renderer) SetIndent(indent string) { r.indent = indent }

// UlClass returns the default top-level list class.
func (r *Renderer) UlClass() string { return r.ulClass }

// SetUlClass sets the default top-level list class.
func (r *Renderer) SetUlClass(class string) { r.ulClass = class }

// LiActiveClass returns the default active list item class.
func (r *Renderer) LiActiveClass() string { return r.liActiveClass }

// SetLiActiveClass sets the default active list item class.
func (r *Renderer) SetLiActiveClass(class string) { r.liActiveClass = class }

// OnlyActiveBranch reports the default only-active-branch mode.
func (r *Renderer) OnlyActiveBranch() bool { return r.onlyActiveBranch }

// SetOnlyActiveBranch sets the default only-active-branch mode.
func (r *Renderer) SetOnlyActiveBranch(on bool) { r.onlyActiveBranch = on }

// RenderParents reports whether ancestors are kept in only-active mode.
func (r *Renderer) RenderParents() bool { return r.renderParents }

// SetRenderParents sets whether ancestors are kept in only-active mode.
func (r *Renderer) SetRenderParents(on bool) { r.renderParents = on }

// AddClassToListItem reports whether page classes go on list items.
func (r *Renderer) AddClassToListItem() bool { return r.addClassToListItem }

// SetAddClassToListItem sets whether page classes go on list items.
func (r *Renderer) SetAddClassToListItem(on bool) { r.addClassToListItem = on }

// Partial returns the default partial.
func (r *Renderer) Partial() PartialSpec { return r.partial }

// SetPartial sets the default partial. A nil spec clears it.
func (r *Renderer) SetPartial(spec PartialSpec) { r.partial = spec }

func (r *Renderer) translate(message, domain string) string {
	if r.translator == nil || message == "" {
		return message
	}
	return r.translator.Translate(message, domain)
}
