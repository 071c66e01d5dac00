// Package middleware holds the HTTP middleware of the preview server.
package middleware

import (
	"context"
	"net/http"
	"path"
	"strings"
)

type requestInfoKey struct{}

// RequestInfo describes where a request landed relative to the mount point.
type RequestInfo struct {
	// Path is relative to BasePath and always starts with "/".
	Path     string
	BasePath string
	Method   string
}

// RequestInfoMiddleware strips basePath from the request path and stores the
// result for handlers that activate pages by path.
func RequestInfoMiddleware(basePath string) func(http.Handler) http.Handler {
	base := NormaliseBase(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := RequestInfo{
				Path:     relativePath(base, r.URL.Path),
				BasePath: base,
				Method:   r.Method,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info)))
		})
	}
}

// RequestInfoFromContext returns the metadata stored by RequestInfoMiddleware.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}

// RequestPathFromContext returns the base-relative request path, or "/".
func RequestPathFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok && info.Path != "" {
		return info.Path
	}
	return "/"
}

// BasePathFromContext returns the mount point, or "/".
func BasePathFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok && info.BasePath != "" {
		return info.BasePath
	}
	return "/"
}

// NormaliseBase cleans base into "/" or a rooted path without a trailing slash.
func NormaliseBase(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return "/"
	}
	return path.Clean("/" + base)
}

func relativePath(base, p string) string {
	if base != "/" {
		if p == base || strings.HasPrefix(p, base+"/") {
			p = p[len(base):]
		}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
