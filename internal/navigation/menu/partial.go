package menu

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"strings"

	"finitefield.org/hanko-navigation/internal/navigation/page"
	"finitefield.org/hanko-navigation/internal/navigation/partial"
)

// PartialSpec names the template used by RenderPartial. It is one of
// PartialName, PartialList or PartialModel.
type PartialSpec interface {
	isPartialSpec()
}

// PartialName is a template name.
type PartialName string

// PartialList holds a template name as its only element.
type PartialList []string

// PartialModel is a template name with extra model variables.
type PartialModel struct {
	Template  string
	Variables map[string]any
}

func (PartialName) isPartialSpec()  {}
func (PartialList) isPartialSpec()  {}
func (PartialModel) isPartialSpec() {}

// RenderPartial renders c through a partial template. The model holds the
// container under "container" and the renderer's Accept under "accept".
// A nil spec falls back to the renderer partial.
func (r *Renderer) RenderPartial(ctx context.Context, c *page.Container, spec PartialSpec) (string, error) {
	return r.RenderPartialWithParams(ctx, nil, c, spec)
}

// RenderPartialWithParams is RenderPartial with extra model parameters.
// Parameters come first; model variables and the container override them.
func (r *Renderer) RenderPartialWithParams(ctx context.Context, params map[string]any, c *page.Container, spec PartialSpec) (string, error) {
	if spec == nil {
		spec = r.partial
	}
	name, vars, err := resolvePartial(spec)
	if err != nil {
		return "", err
	}
	if r.partials == nil {
		return "", fmt.Errorf("menu: render partial %q: %w", name, partial.ErrNotFound)
	}

	model := partial.Model{}
	maps.Copy(model, params)
	maps.Copy(model, vars)
	model["container"] = r.containerOrDefault(c)
	model[partial.AcceptKey] = partial.AcceptFunc(r.Accept)

	var buf bytes.Buffer
	if err := r.partials.RenderPartial(ctx, &buf, name, model); err != nil {
		return "", fmt.Errorf("menu: render partial %q: %w", name, err)
	}
	return buf.String(), nil
}

func resolvePartial(spec PartialSpec) (string, map[string]any, error) {
	switch s := spec.(type) {
	case nil:
		return "", nil, ErrNoPartial
	case PartialName:
		if strings.TrimSpace(string(s)) == "" {
			return "", nil, ErrNoPartial
		}
		return string(s), nil, nil
	case PartialList:
		if len(s) != 1 {
			return "", nil, &ConfigError{Option: "partial", Value: []string(s), Err: ErrPartialArity}
		}
		if strings.TrimSpace(s[0]) == "" {
			return "", nil, ErrNoPartial
		}
		return s[0], nil, nil
	case PartialModel:
		if strings.TrimSpace(s.Template) == "" {
			return "", nil, ErrNoPartial
		}
		return s.Template, s.Variables, nil
	default:
		return "", nil, &ConfigError{Option: "partial", Value: spec, Err: ErrInvalidOption}
	}
}
