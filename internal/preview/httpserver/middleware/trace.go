package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader echoes the trace id of the request span.
const TraceIDHeader = "X-Trace-Id"

var tracer = otel.Tracer("finitefield.org/hanko-navigation/internal/preview/httpserver/middleware")

// Trace extracts incoming trace context and starts a server span per request.
// A nil propagator means W3C trace context.
func Trace(propagator propagation.TextMapPropagator) func(http.Handler) http.Handler {
	if propagator == nil {
		propagator = propagation.TraceContext{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			span.SetAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			)

			if sc := span.SpanContext(); sc.HasTraceID() {
				w.Header().Set(TraceIDHeader, sc.TraceID().String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TraceIDFromRequest returns the trace id of the request span, if any.
func TraceIDFromRequest(r *http.Request) (string, bool) {
	sc := trace.SpanContextFromContext(r.Context())
	if !sc.HasTraceID() {
		return "", false
	}
	return sc.TraceID().String(), true
}
