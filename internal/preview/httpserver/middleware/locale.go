package middleware

import (
	"context"
	"net/http"
	"strings"

	"finitefield.org/hanko-navigation/internal/navigation/i18n"
)

type langKeyType int

const langKey langKeyType = iota

// Locale resolves the request language from ?lang= or Accept-Language and
// stores it in the context. Without a bundle the request passes through.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bundle == nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Language")

			lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
			if !bundle.IsSupported(lang) {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), langKey, lang)))
		})
	}
}

// LangFromContext returns the language resolved by Locale.
func LangFromContext(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(langKey).(string)
	return lang, ok && lang != ""
}
