// Package config resolves navmenu runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile      = ".env"
	defaultAddr         = ":8080"
	defaultBasePath     = "/"
	defaultContainer    = "main"
	defaultFallbackLang = "en"
	defaultRole         = "guest"
	defaultLogLevel     = "info"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 15 * time.Second

	// UnrestrictedDepth disables the max depth bound.
	UnrestrictedDepth = -1
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server     ServerConfig
	Navigation NavigationConfig
	Locale     LocaleConfig
	ACL        ACLConfig
	LogLevel   string
}

// ServerConfig configures the preview HTTP server.
type ServerConfig struct {
	Addr         string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NavigationConfig points at the page tree and the renderer defaults.
type NavigationConfig struct {
	File        string
	Container   string
	PartialsDir string
	MaxDepth    int
	MinDepth    int
}

// HasMaxDepth reports whether a max depth bound is configured.
func (c NavigationConfig) HasMaxDepth() bool {
	return c.MaxDepth >= 0
}

// LocaleConfig controls label translation.
type LocaleConfig struct {
	Dir       string
	Fallback  string
	Supported []string
}

// ACLConfig controls page authorization.
type ACLConfig struct {
	File        string
	DefaultRole string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration by combining defaults, .env overrides,
// environment variables and the explicit map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	intField := func(field, key string, fallback int) int {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return fallback
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			invalid = append(invalid, field)
			return fallback
		}
		return parsed
	}
	durationField := func(field, key string, fallback time.Duration) time.Duration {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return fallback
		}
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			invalid = append(invalid, field)
			return fallback
		}
		return d
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         stringWithDefault(lookup, "NAVMENU_HTTP_ADDR", defaultAddr),
			BasePath:     normaliseBasePath(stringWithDefault(lookup, "NAVMENU_BASE_PATH", defaultBasePath)),
			ReadTimeout:  durationField("Server.ReadTimeout", "NAVMENU_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationField("Server.WriteTimeout", "NAVMENU_WRITE_TIMEOUT", defaultWriteTimeout),
		},
		Navigation: NavigationConfig{
			File:        stringWithDefault(lookup, "NAVMENU_NAV_FILE", ""),
			Container:   strings.ToLower(stringWithDefault(lookup, "NAVMENU_CONTAINER", defaultContainer)),
			PartialsDir: stringWithDefault(lookup, "NAVMENU_PARTIALS_DIR", ""),
			MaxDepth:    intField("Navigation.MaxDepth", "NAVMENU_MAX_DEPTH", UnrestrictedDepth),
			MinDepth:    intField("Navigation.MinDepth", "NAVMENU_MIN_DEPTH", 0),
		},
		Locale: LocaleConfig{
			Dir:       stringWithDefault(lookup, "NAVMENU_LOCALES_DIR", ""),
			Fallback:  strings.ToLower(stringWithDefault(lookup, "NAVMENU_FALLBACK_LANG", defaultFallbackLang)),
			Supported: csvWithDefault(lookup, "NAVMENU_SUPPORTED_LANGS"),
		},
		ACL: ACLConfig{
			File:        stringWithDefault(lookup, "NAVMENU_ACL_FILE", ""),
			DefaultRole: strings.ToLower(stringWithDefault(lookup, "NAVMENU_DEFAULT_ROLE", defaultRole)),
		},
		LogLevel: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	if len(cfg.Locale.Supported) == 0 {
		cfg.Locale.Supported = []string{cfg.Locale.Fallback}
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if strings.TrimSpace(cfg.Navigation.File) == "" {
		missing = append(missing, "Navigation.File")
	}
	if cfg.Navigation.MinDepth < 0 {
		missing = append(missing, "Navigation.MinDepth")
	}
	if cfg.Navigation.MaxDepth < UnrestrictedDepth {
		missing = append(missing, "Navigation.MaxDepth")
	}
	if cfg.Navigation.HasMaxDepth() && cfg.Navigation.MaxDepth < cfg.Navigation.MinDepth {
		missing = append(missing, "Navigation.MaxDepth")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func normaliseBasePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

// loadDotEnv reads KEY=value pairs from path. A missing file yields no values.
func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
