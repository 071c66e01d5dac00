// Package i18n loads translation catalogues grouped by locale and text domain.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultDomain is used when a message carries no text domain.
const DefaultDomain = "default"

type catalogue map[string]map[string]string // domain -> key -> message

// Bundle holds translations for a set of supported locales.
type Bundle struct {
	dict      map[string]catalogue
	fallback  string
	supported []string
	matcher   language.Matcher
}

// Load reads catalogues from fsys. For every supported locale it reads
// "<lang>.json" into the default domain and each "<lang>/<domain>.yaml" into
// its domain. Missing files are tolerated except for the fallback locale,
// which must provide at least one catalogue.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	fallback = normaliseLang(fallback)
	if fallback == "" {
		return nil, errors.New("i18n: fallback locale is required")
	}
	b := New(fallback, supported)

	for _, lang := range b.supported {
		found := false

		raw, err := fs.ReadFile(fsys, lang+".json")
		switch {
		case err == nil:
			var m map[string]string
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, fmt.Errorf("i18n: unmarshal %s.json: %w", lang, err)
			}
			b.Add(lang, DefaultDomain, m)
			found = true
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("i18n: read %s.json: %w", lang, err)
		}

		files, err := fs.Glob(fsys, path.Join(lang, "*.yaml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: list %s: %w", lang, err)
		}
		for _, file := range files {
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, fmt.Errorf("i18n: read %s: %w", file, err)
			}
			var m map[string]string
			if err := yaml.Unmarshal(raw, &m); err != nil {
				return nil, fmt.Errorf("i18n: unmarshal %s: %w", file, err)
			}
			domain := strings.TrimSuffix(path.Base(file), path.Ext(file))
			b.Add(lang, domain, m)
			found = true
		}

		if !found && lang == fallback {
			return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
		}
	}
	return b, nil
}

// New returns an empty bundle. The fallback locale is always supported.
func New(fallback string, supported []string) *Bundle {
	fallback = normaliseLang(fallback)
	langs := []string{fallback}
	seen := map[string]struct{}{fallback: {}}
	for _, l := range supported {
		l = normaliseLang(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		langs = append(langs, l)
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}

	return &Bundle{
		dict:      map[string]catalogue{},
		fallback:  fallback,
		supported: langs,
		matcher:   language.NewMatcher(tags),
	}
}

// Add merges messages into the catalogue of lang and domain.
func (b *Bundle) Add(lang, domain string, messages map[string]string) {
	lang = normaliseLang(lang)
	if domain == "" {
		domain = DefaultDomain
	}
	cat, ok := b.dict[lang]
	if !ok {
		cat = catalogue{}
		b.dict[lang] = cat
	}
	msgs, ok := cat[domain]
	if !ok {
		msgs = map[string]string{}
		cat[domain] = msgs
	}
	for k, v := range messages {
		msgs[k] = v
	}
}

// Supported returns the supported locales, sorted.
func (b *Bundle) Supported() []string {
	out := make([]string, len(b.supported))
	copy(out, b.supported)
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// T returns the translation of key in lang and domain, falling back to the
// fallback locale and finally to the key itself.
func (b *Bundle) T(lang, domain, key string) string {
	if key == "" {
		return ""
	}
	if domain == "" {
		domain = DefaultDomain
	}
	if v, ok := b.lookup(normaliseLang(lang), domain, key); ok {
		return v
	}
	if v, ok := b.lookup(b.fallback, domain, key); ok {
		return v
	}
	return key
}

// Resolve chooses the best supported language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	if strings.TrimSpace(acceptLang) == "" {
		return b.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, confidence := b.matcher.Match(prefs...)
	if confidence == language.No || idx < 0 || idx >= len(b.supported) {
		return b.fallback
	}
	return b.supported[idx]
}

// IsSupported reports whether lang is one of the bundle's locales.
func (b *Bundle) IsSupported(lang string) bool {
	lang = normaliseLang(lang)
	for _, l := range b.supported {
		if l == lang {
			return true
		}
	}
	return false
}

// Translator binds the bundle to lang.
func (b *Bundle) Translator(lang string) Translator {
	if !b.IsSupported(lang) {
		lang = b.fallback
	}
	return Translator{bundle: b, lang: normaliseLang(lang)}
}

// Translator translates messages for a single locale.
type Translator struct {
	bundle *Bundle
	lang   string
}

// Translate returns the message translated in the bound locale.
func (t Translator) Translate(message, domain string) string {
	if t.bundle == nil {
		return message
	}
	return t.bundle.T(t.lang, domain, message)
}

// Lang returns the bound locale.
func (t Translator) Lang() string { return t.lang }

func (b *Bundle) lookup(lang, domain, key string) (string, bool) {
	cat, ok := b.dict[lang]
	if !ok {
		return "", false
	}
	msgs, ok := cat[domain]
	if !ok {
		return "", false
	}
	v, ok := msgs[key]
	return v, ok
}

func normaliseLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
