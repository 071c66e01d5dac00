package httpserver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"finitefield.org/hanko-navigation/internal/navigation/menu"
)

// queryError reports a malformed query parameter.
type queryError struct {
	Param string
	Err   error
}

func (e *queryError) Error() string {
	return fmt.Sprintf("invalid query parameter %s: %v", e.Param, e.Err)
}

func (e *queryError) Unwrap() error { return e.Err }

// MenuOptions translates fragment query parameters into render options.
// Enum values are validated by the renderer.
func MenuOptions(q url.Values) ([]menu.Option, error) {
	var opts []menu.Option

	if raw := strings.TrimSpace(q.Get("max_depth")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &queryError{Param: "max_depth", Err: err}
		}
		if n < 0 {
			opts = append(opts, menu.WithoutMaxDepth())
		} else {
			opts = append(opts, menu.WithMaxDepth(n))
		}
	}
	if raw := strings.TrimSpace(q.Get("min_depth")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &queryError{Param: "min_depth", Err: err}
		}
		opts = append(opts, menu.WithMinDepth(n))
	}

	flags := []struct {
		param string
		opt   func(bool) menu.Option
	}{
		{"only_active", menu.WithOnlyActiveBranch},
		{"render_parents", menu.WithRenderParents},
		{"escape_labels", menu.WithEscapeLabels},
		{"class_on_li", menu.WithAddClassToListItem},
		{"tabs", menu.WithTabs},
		{"pills", menu.WithPills},
		{"fill", menu.WithFill},
		{"justified", menu.WithJustified},
		{"dark", menu.WithDark},
		{"navbar", menu.WithInNavbar},
	}
	for _, flag := range flags {
		raw := strings.TrimSpace(q.Get(flag.param))
		if raw == "" {
			continue
		}
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &queryError{Param: flag.param, Err: err}
		}
		opts = append(opts, flag.opt(on))
	}

	if v := q.Get("style"); v != "" {
		opts = append(opts, menu.WithStyle(menu.Style(strings.ToLower(v))))
	}
	if v := q.Get("sublink"); v != "" {
		opts = append(opts, menu.WithSublink(menu.SublinkStyle(strings.ToLower(v))))
	}
	if v := q.Get("direction"); v != "" {
		opts = append(opts, menu.WithDirection(menu.Direction(strings.ToLower(v))))
	}
	if v := q.Get("vertical"); v != "" {
		opts = append(opts, menu.WithVertical(v))
	}
	if v := q.Get("ul_class"); v != "" {
		opts = append(opts, menu.WithUlClass(v))
	}
	if v := q.Get("li_class"); v != "" {
		opts = append(opts, menu.WithLiClass(v))
	}
	if v := q.Get("li_active_class"); v != "" {
		opts = append(opts, menu.WithLiActiveClass(v))
	}
	return opts, nil
}
