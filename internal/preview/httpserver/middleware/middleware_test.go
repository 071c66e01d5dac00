package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/hanko-navigation/internal/navigation/i18n"
	"finitefield.org/hanko-navigation/internal/navigation/observability"
)

func TestNormaliseBase(t *testing.T) {
	cases := map[string]string{
		"":           "/",
		"  ":         "/",
		"/":          "/",
		"preview":    "/preview",
		"/preview/":  "/preview",
		"/a/b//":     "/a/b",
		" /preview ": "/preview",
	}
	for in, want := range cases {
		require.Equal(t, want, NormaliseBase(in), "input %q", in)
	}
}

func TestRequestInfoMiddlewareStripsBasePath(t *testing.T) {
	var (
		got RequestInfo
		ok  bool
	)
	h := RequestInfoMiddleware("/preview/")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = RequestInfoFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/preview/products/stamps", nil))
	require.True(t, ok)
	require.Equal(t, "/products/stamps", got.Path)
	require.Equal(t, "/preview", got.BasePath)
	require.Equal(t, http.MethodGet, got.Method)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/preview", nil))
	require.Equal(t, "/", got.Path)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/previews/x", nil))
	require.Equal(t, "/previews/x", got.Path)
}

func TestRequestPathDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	require.Equal(t, "/", RequestPathFromContext(req.Context()))
	require.Equal(t, "/", BasePathFromContext(req.Context()))
	_, ok := RequestInfoFromContext(req.Context())
	require.False(t, ok)
}

func TestLocaleResolvesLanguage(t *testing.T) {
	bundle := i18n.New("en", []string{"en", "ja"})

	var lang string
	h := Locale(bundle)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		lang, _ = LangFromContext(r.Context())
	}))

	cases := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{name: "query wins", target: "/?lang=JA", accept: "en", want: "ja"},
		{name: "accept language", target: "/", accept: "ja-JP,ja;q=0.9,en;q=0.5", want: "ja"},
		{name: "unsupported query", target: "/?lang=fr", accept: "", want: "en"},
		{name: "unsupported header", target: "/", accept: "de", want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.want, lang)
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
			require.Equal(t, "Accept-Language", rec.Header().Get("Vary"))
		})
	}
}

func TestLocaleWithoutBundlePassesThrough(t *testing.T) {
	var ok bool
	h := Locale(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, ok = LangFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=ja", nil))

	require.False(t, ok)
	require.Empty(t, rec.Header().Get("Vary"))
}

func TestLoggerRecordsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	h := chimw.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short")
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "inside", entries[0].Message)
	require.Contains(t, entries[0].ContextMap(), "request_id")

	access := entries[1]
	require.Equal(t, "request", access.Message)
	fields := access.ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/products", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.EqualValues(t, 5, fields["bytes"])
	require.NotEmpty(t, fields["request_id"])
}

func TestTraceContinuesIncomingTrace(t *testing.T) {
	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"

	var seen string
	h := Trace(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = TraceIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, traceID, seen)
	require.Equal(t, traceID, rec.Header().Get(TraceIDHeader))
}

func TestTraceWithoutIncomingContext(t *testing.T) {
	h := Trace(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Header().Get(TraceIDHeader))
}

func TestLoggerIncludesTraceID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Trace(nil)(Logger(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, logs.All(), 1)
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", logs.All()[0].ContextMap()["trace_id"])
}
