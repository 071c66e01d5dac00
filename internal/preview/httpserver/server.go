// Package httpserver serves menu fragments and full preview pages for a
// navigation tree.
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/acl"
	"finitefield.org/hanko-navigation/internal/navigation/i18n"
	"finitefield.org/hanko-navigation/internal/navigation/observability"
	"finitefield.org/hanko-navigation/internal/navigation/page"
	"finitefield.org/hanko-navigation/internal/navigation/partial"
	custommw "finitefield.org/hanko-navigation/internal/preview/httpserver/middleware"
)

const (
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultHandlerTimeout = 30 * time.Second
)

// Config holds runtime options for the preview HTTP server.
type Config struct {
	Address   string
	BasePath  string
	Container string

	Resolver    page.Resolver
	Bundle      *i18n.Bundle
	ACL         *acl.ACL
	DefaultRole string
	Partials    partial.Renderer

	// MaxDepth bounds menus by default; nil means unrestricted.
	MaxDepth *int
	MinDepth int

	Metrics *observability.Metrics
	Logger  *zap.Logger

	// Propagator extracts incoming trace context; nil means W3C trace context.
	Propagator propagation.TextMapPropagator

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New constructs the HTTP server with its middleware stack.
func New(cfg Config) *http.Server {
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetrics()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Partials == nil {
		cfg.Partials = partial.NewRegistry()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	basePath := custommw.NormaliseBase(cfg.BasePath)
	h := &handlers{cfg: cfg, content: newContentRenderer()}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(custommw.Trace(cfg.Propagator))
	router.Use(custommw.Logger(cfg.Logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(defaultHandlerTimeout))
	router.Use(custommw.RequestInfoMiddleware(basePath))
	router.Use(custommw.Locale(cfg.Bundle))

	routes := func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
		r.Get("/fragments/menu/{container}", h.menuFragment)
		r.Get("/fragments/submenu/{container}", h.subMenuFragment)
		r.Get("/fragments/partial/{container}/{partial}", h.partialFragment)
		r.Get("/*", h.fullPage)
	}
	if basePath == "/" {
		routes(router)
	} else {
		router.Route(basePath, routes)
	}

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
}
