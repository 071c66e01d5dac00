package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/observability"
)

// Logger emits one structured log entry per request and exposes a request
// scoped logger through observability.FromContext.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger
			if rid := chimw.GetReqID(r.Context()); rid != "" {
				reqLogger = reqLogger.With(zap.String("request_id", rid))
			}
			if tid, ok := TraceIDFromRequest(r); ok {
				reqLogger = reqLogger.With(zap.String("trace_id", tid))
			}

			rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(rw, r.WithContext(observability.WithLogger(r.Context(), reqLogger)))

			status := rw.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLogger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", rw.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
