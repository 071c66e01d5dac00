package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPartial is returned by RenderPartial when neither the call nor the
	// renderer names a partial.
	ErrNoPartial = errors.New("unable to render menu: no partial view script provided")
	// ErrPartialArity is returned when a PartialList does not hold exactly one name.
	ErrPartialArity = errors.New("unable to render menu: a partial list must contain exactly one template name")
	// ErrInvalidSize flags an unknown vertical breakpoint token.
	ErrInvalidSize = errors.New("menu: invalid size")
	// ErrInvalidOption flags an unknown style, direction or sublink value.
	ErrInvalidOption = errors.New("menu: invalid option")
	// ErrNoResolver is returned when a named container is requested without a resolver.
	ErrNoResolver = errors.New("menu: no container resolver configured")
)

// ConfigError reports a rejected render option.
type ConfigError struct {
	Option string
	Value  any
	Err    error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Option, e.Value)
}

// Unwrap exposes the sentinel.
func (e *ConfigError) Unwrap() error { return e.Err }
