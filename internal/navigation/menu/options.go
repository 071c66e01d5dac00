package menu

import (
	"slices"
	"strings"
)

// Style selects the list element.
type Style string

const (
	StyleUL Style = "ul"
	StyleOL Style = "ol"
)

// Direction selects where dropdowns open.
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionStart Direction = "start"
	DirectionEnd   Direction = "end"
)

// SublinkStyle selects the element used for pages that open a dropdown.
type SublinkStyle string

const (
	SublinkA       SublinkStyle = "a"
	SublinkSpan    SublinkStyle = "span"
	SublinkButton  SublinkStyle = "button"
	SublinkDetails SublinkStyle = "details"
)

// Sizes lists the vertical breakpoint tokens accepted by WithVertical.
var Sizes = []string{"xs", "sm", "md", "lg", "xl", "xxl"}

var directionClasses = map[Direction]string{
	DirectionDown:  "dropdown",
	DirectionUp:    "dropup",
	DirectionStart: "dropstart",
	DirectionEnd:   "dropend",
}

// Option adjusts a single render call.
type Option func(*renderOptions)

type renderOptions struct {
	style Style

	minDepth    int
	maxDepth    int
	hasMaxDepth bool

	onlyActiveBranch   bool
	renderParents      bool
	escapeLabels       bool
	addClassToListItem bool

	indent        string
	ulClass       string
	liClass       string
	liActiveClass string

	vertical  string
	direction Direction
	sublink   SublinkStyle

	tabs      bool
	pills     bool
	fill      bool
	justified bool
	dark      bool
	inNavbar  bool

	role string
}

// WithStyle renders ordered or unordered lists.
func WithStyle(s Style) Option {
	return func(o *renderOptions) { o.style = s }
}

// WithMaxDepth limits rendering to pages at depth n or above.
func WithMaxDepth(n int) Option {
	return func(o *renderOptions) {
		o.maxDepth = n
		o.hasMaxDepth = true
	}
}

// WithoutMaxDepth lifts any max depth bound, including the renderer default.
func WithoutMaxDepth() Option {
	return func(o *renderOptions) {
		o.maxDepth = 0
		o.hasMaxDepth = false
	}
}

// WithMinDepth skips pages above depth n. Negative values mean 0.
func WithMinDepth(n int) Option {
	return func(o *renderOptions) { o.minDepth = n }
}

// WithOnlyActiveBranch renders only the branch holding the active page.
func WithOnlyActiveBranch(on bool) Option {
	return func(o *renderOptions) { o.onlyActiveBranch = on }
}

// WithRenderParents keeps the ancestors of the active page in only-active mode.
func WithRenderParents(on bool) Option {
	return func(o *renderOptions) { o.renderParents = on }
}

// WithIndent prefixes every emitted line.
func WithIndent(indent string) Option {
	return func(o *renderOptions) { o.indent = indent }
}

// WithUlClass appends a class to the top-level list.
func WithUlClass(class string) Option {
	return func(o *renderOptions) { o.ulClass = class }
}

// WithLiClass appends a class to every list item.
func WithLiClass(class string) Option {
	return func(o *renderOptions) { o.liClass = class }
}

// WithLiActiveClass sets the class applied to list items of the active branch.
func WithLiActiveClass(class string) Option {
	return func(o *renderOptions) { o.liActiveClass = class }
}

// WithEscapeLabels toggles label escaping. Unescaped labels are sanitized.
func WithEscapeLabels(on bool) Option {
	return func(o *renderOptions) { o.escapeLabels = on }
}

// WithAddClassToListItem moves the page class from the link to its list item.
func WithAddClassToListItem(on bool) Option {
	return func(o *renderOptions) { o.addClassToListItem = on }
}

// WithVertical stacks the top-level list from the given breakpoint upwards.
func WithVertical(size string) Option {
	return func(o *renderOptions) { o.vertical = strings.ToLower(strings.TrimSpace(size)) }
}

// WithDirection sets the dropdown direction.
func WithDirection(d Direction) Option {
	return func(o *renderOptions) { o.direction = d }
}

// WithSublink sets the element used for dropdown toggles.
func WithSublink(s SublinkStyle) Option {
	return func(o *renderOptions) { o.sublink = s }
}

// WithTabs renders the top-level list as tabs.
func WithTabs(on bool) Option {
	return func(o *renderOptions) { o.tabs = on }
}

// WithPills renders the top-level list as pills.
func WithPills(on bool) Option {
	return func(o *renderOptions) { o.pills = on }
}

// WithFill stretches top-level items proportionally.
func WithFill(on bool) Option {
	return func(o *renderOptions) { o.fill = on }
}

// WithJustified stretches top-level items to equal widths.
func WithJustified(on bool) Option {
	return func(o *renderOptions) { o.justified = on }
}

// WithDark renders dark dropdown menus.
func WithDark(on bool) Option {
	return func(o *renderOptions) { o.dark = on }
}

// WithInNavbar renders navbar-nav lists instead of nav lists.
func WithInNavbar(on bool) Option {
	return func(o *renderOptions) { o.inNavbar = on }
}

// WithRole authorizes pages for role instead of the renderer role.
func WithRole(role string) Option {
	return func(o *renderOptions) { o.role = role }
}

// options layers opts over the renderer defaults.
func (r *Renderer) options(opts []Option) renderOptions {
	o := renderOptions{
		style:              StyleUL,
		minDepth:           r.minDepth,
		maxDepth:           r.maxDepth,
		hasMaxDepth:        r.hasMaxDepth,
		onlyActiveBranch:   r.onlyActiveBranch,
		renderParents:      r.renderParents,
		escapeLabels:       true,
		addClassToListItem: r.addClassToListItem,
		indent:             r.indent,
		ulClass:            r.ulClass,
		liActiveClass:      r.liActiveClass,
		direction:          DirectionDown,
		sublink:            SublinkA,
		role:               r.role,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.minDepth < 0 {
		o.minDepth = 0
	}
	if o.style == "" {
		o.style = StyleUL
	}
	if o.direction == "" {
		o.direction = DirectionDown
	}
	if o.sublink == "" {
		o.sublink = SublinkA
	}
	return o
}

func (o renderOptions) validate() error {
	switch o.style {
	case StyleUL, StyleOL:
	default:
		return &ConfigError{Option: "style", Value: o.style, Err: ErrInvalidOption}
	}
	if _, ok := directionClasses[o.direction]; !ok {
		return &ConfigError{Option: "direction", Value: o.direction, Err: ErrInvalidOption}
	}
	switch o.sublink {
	case SublinkA, SublinkSpan, SublinkButton, SublinkDetails:
	default:
		return &ConfigError{Option: "sublink", Value: o.sublink, Err: ErrInvalidOption}
	}
	if o.vertical != "" && !slices.Contains(Sizes, o.vertical) {
		return &ConfigError{Option: "vertical", Value: o.vertical, Err: ErrInvalidSize}
	}
	return nil
}

// verticalClass maps a breakpoint to its flex-column utility.
func verticalClass(size string) string {
	switch size {
	case "":
		return ""
	case "xs":
		return "flex-column"
	default:
		return "flex-" + size + "-column"
	}
}

// depthAllowed reports whether pages at depth may be rendered.
func (o renderOptions) depthAllowed(depth int) bool {
	return !o.hasMaxDepth || depth <= o.maxDepth
}
