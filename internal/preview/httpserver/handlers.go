package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/menu"
	"finitefield.org/hanko-navigation/internal/navigation/observability"
	"finitefield.org/hanko-navigation/internal/navigation/page"
	"finitefield.org/hanko-navigation/internal/navigation/partial"
	custommw "finitefield.org/hanko-navigation/internal/preview/httpserver/middleware"
)

const (
	contentProperty = "content"
	defaultLang     = "en"
)

var tracer = otel.Tracer("finitefield.org/hanko-navigation/internal/preview/httpserver")

type handlers struct {
	cfg     Config
	content *contentRenderer
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// container resolves name and returns a request scoped copy with the page
// matching path marked active. An empty path keeps the loaded active flags.
func (h *handlers) container(name, path string) (*page.Container, *page.Page, error) {
	if h.cfg.Resolver == nil {
		return nil, nil, page.ErrContainerNotFound
	}
	c, err := h.cfg.Resolver.Resolve(name)
	if err != nil {
		return nil, nil, err
	}
	c = c.Clone()
	if strings.TrimSpace(path) == "" {
		return c, nil, nil
	}
	return c, page.ActivatePath(c, path), nil
}

// renderer builds a renderer for the request locale and role.
func (h *handlers) renderer(r *http.Request, c *page.Container) *menu.Renderer {
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		role = h.cfg.DefaultRole
	}
	cfg := menu.Config{
		Container: c,
		Resolver:  h.cfg.Resolver,
		Partials:  h.cfg.Partials,
		Logger:    observability.FromContext(r.Context()),
		Role:      role,
		MaxDepth:  h.cfg.MaxDepth,
		MinDepth:  h.cfg.MinDepth,
	}
	if h.cfg.ACL != nil {
		cfg.Authorizer = h.cfg.ACL
		cfg.UseACL = true
	}
	if h.cfg.Bundle != nil {
		lang, ok := custommw.LangFromContext(r.Context())
		if !ok {
			lang = h.cfg.Bundle.Fallback()
		}
		cfg.Translator = h.cfg.Bundle.Translator(lang)
	}
	return menu.New(cfg)
}

func (h *handlers) menuFragment(w http.ResponseWriter, r *http.Request) {
	h.fragment(w, r, observability.KindMenu, func(rd *menu.Renderer, c *page.Container, opts []menu.Option) (string, error) {
		return rd.RenderMenu(c, opts...)
	})
}

func (h *handlers) subMenuFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	liActive := q.Get("li_active_class")
	if liActive == "" {
		liActive = "active"
	}
	h.fragment(w, r, observability.KindSubMenu, func(rd *menu.Renderer, c *page.Container, opts []menu.Option) (string, error) {
		return rd.RenderSubMenu(c, q.Get("ul_class"), "", liActive, opts...)
	})
}

func (h *handlers) partialFragment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "partial")
	h.fragment(w, r, observability.KindPartial, func(rd *menu.Renderer, c *page.Container, _ []menu.Option) (string, error) {
		return rd.RenderPartialWithParams(r.Context(), map[string]any{"query": r.URL.Query()}, c, menu.PartialName(name))
	})
}

type renderFunc func(rd *menu.Renderer, c *page.Container, opts []menu.Option) (string, error)

func (h *handlers) fragment(w http.ResponseWriter, r *http.Request, kind string, render renderFunc) {
	start := time.Now()
	logger := observability.FromContext(r.Context())

	opts, err := MenuOptions(r.URL.Query())
	if err != nil {
		h.cfg.Metrics.ObserveRender(kind, start, "", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := chi.URLParam(r, "container")
	c, _, err := h.container(name, r.URL.Query().Get("path"))
	if err != nil {
		h.cfg.Metrics.ObserveRender(kind, start, "", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	_, span := tracer.Start(r.Context(), "navmenu.render", trace.WithAttributes(
		attribute.String("navmenu.kind", kind),
		attribute.String("navmenu.container", name),
	))
	out, err := render(h.renderer(r, c), c, opts)
	h.cfg.Metrics.ObserveRender(kind, start, out, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if err != nil {
		status := renderErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("render fragment failed", zap.String("kind", kind), zap.Error(err))
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (h *handlers) fullPage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := observability.FromContext(r.Context())

	c, active, err := h.container(h.cfg.Container, custommw.RequestPathFromContext(r.Context()))
	if err != nil {
		h.cfg.Metrics.ObserveRender(observability.KindPage, start, "", err)
		logger.Error("resolve container failed", zap.String("container", h.cfg.Container), zap.Error(err))
		http.Error(w, "navigation unavailable", http.StatusInternalServerError)
		return
	}
	if active == nil {
		h.cfg.Metrics.ObserveRender(observability.KindPage, start, "", nil)
		http.NotFound(w, r)
		return
	}

	rd := h.renderer(r, c)
	if !rd.Accept(active) {
		h.cfg.Metrics.ObserveRender(observability.KindPage, start, "", nil)
		http.NotFound(w, r)
		return
	}
	nav, err := rd.RenderMenu(c, menu.WithInNavbar(true), menu.WithUlClass("me-auto"))
	if err != nil {
		h.cfg.Metrics.ObserveRender(observability.KindPage, start, "", err)
		logger.Error("render navbar failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	crumbs, err := rd.RenderPartial(r.Context(), c, menu.PartialName(partial.BreadcrumbsName))
	if err != nil && !errors.Is(err, partial.ErrNotFound) {
		logger.Warn("render breadcrumbs failed", zap.Error(err))
	}
	body, err := h.content.Render(active.StringProperty(contentProperty))
	if err != nil {
		logger.Warn("render page content failed", zap.String("href", active.Href), zap.Error(err))
	}

	lang := defaultLang
	if l, ok := custommw.LangFromContext(r.Context()); ok {
		lang = l
	}
	title := active.Label
	if h.cfg.Bundle != nil {
		title = h.cfg.Bundle.T(lang, active.TextDomain, active.Label)
	}

	var buf strings.Builder
	if err := previewPage(pageView{
		Lang:           lang,
		Title:          title,
		NavHTML:        nav,
		BreadcrumbHTML: crumbs,
		ContentHTML:    body,
	}).Render(&buf); err != nil {
		h.cfg.Metrics.ObserveRender(observability.KindPage, start, "", err)
		logger.Error("render page failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	h.cfg.Metrics.ObserveRender(observability.KindPage, start, nav, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, buf.String())
}

func renderErrorStatus(err error) int {
	switch {
	case errors.Is(err, menu.ErrInvalidOption), errors.Is(err, menu.ErrInvalidSize),
		errors.Is(err, menu.ErrPartialArity), errors.Is(err, menu.ErrNoPartial):
		return http.StatusBadRequest
	case errors.Is(err, partial.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
