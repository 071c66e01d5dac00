package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render kinds used as metric labels.
const (
	KindMenu    = "menu"
	KindSubMenu = "submenu"
	KindPartial = "partial"
	KindPage    = "page"
)

// Metrics records menu render counts and latencies.
type Metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the render collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navmenu_renders_total",
			Help: "Menu renders by kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navmenu_render_duration_seconds",
			Help:    "Menu render latency by kind.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"kind"}),
	}
	reg.MustRegister(m.renders, m.duration)
	return m
}

// ObserveRender records one render of kind that started at start. Renders
// producing no markup count as "empty".
func (m *Metrics) ObserveRender(kind string, start time.Time, html string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case html == "":
		result = "empty"
	}
	m.renders.WithLabelValues(kind, result).Inc()
	m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
