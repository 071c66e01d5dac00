package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/escape"
	"finitefield.org/hanko-navigation/internal/navigation/menu"
	"finitefield.org/hanko-navigation/internal/navigation/observability"
	"finitefield.org/hanko-navigation/internal/navigation/page"
)

type renderFlags struct {
	active         string
	lang           string
	role           string
	submenu        bool
	partial        string
	strictEscaping bool

	maxDepth      int
	minDepth      int
	onlyActive    bool
	renderParents bool
	style         string
	sublink       string
	direction     string
	vertical      string
	indent        string
	ulClass       string
	liClass       string
	liActiveClass string
	escapeLabels  bool
	classOnLi     bool
	tabs          bool
	pills         bool
	fill          bool
	justified     bool
	dark          bool
	navbar        bool
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the menu of a container to stdout",
		Long: `The render command loads the page tree, marks the page matching --active
and prints the rendered menu.

Example:
  navmenu render --nav navigation.yaml --active /products/stamps
  navmenu render --nav navigation.yaml --active /products --only-active --render-parents=false
  navmenu render --nav navigation.yaml --active / --partial breadcrumbs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), g, f, cmd.Flags(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.active, "active", "", "Request path whose page is marked active")
	fs.StringVar(&f.lang, "lang", "", "Locale used to translate labels")
	fs.StringVar(&f.role, "role", "", "Comma separated roles checked against the ACL (NAVMENU_DEFAULT_ROLE)")
	fs.BoolVar(&f.submenu, "submenu", false, "Render only the deepest active level")
	fs.StringVar(&f.partial, "partial", "", "Render the named partial instead of the menu")
	fs.BoolVar(&f.strictEscaping, "strict-escaping", false, "Entity-encode every non-alphanumeric attribute character")

	fs.IntVar(&f.maxDepth, "max-depth", 0, "Deepest level to render; negative removes the bound")
	fs.IntVar(&f.minDepth, "min-depth", 0, "Shallowest level to render")
	fs.BoolVar(&f.onlyActive, "only-active", false, "Render only the active branch")
	fs.BoolVar(&f.renderParents, "render-parents", true, "Keep the parents of the active branch")
	fs.StringVar(&f.style, "style", "", "List style: ul or ol")
	fs.StringVar(&f.sublink, "sublink", "", "Dropdown toggle element: a, span, button or details")
	fs.StringVar(&f.direction, "direction", "", "Dropdown direction: down, up, start or end")
	fs.StringVar(&f.vertical, "vertical", "", "Breakpoint from which the menu stacks vertically")
	fs.StringVar(&f.indent, "indent", "", "Indentation prefix of the outermost list")
	fs.StringVar(&f.ulClass, "ul-class", "", "Class added to the outermost list")
	fs.StringVar(&f.liClass, "li-class", "", "Class added to every list item")
	fs.StringVar(&f.liActiveClass, "li-active-class", "", "Class of list items on the active branch")
	fs.BoolVar(&f.escapeLabels, "escape-labels", true, "Escape labels instead of sanitizing them")
	fs.BoolVar(&f.classOnLi, "class-on-li", false, "Put page classes on the list item instead of the link")
	fs.BoolVar(&f.tabs, "tabs", false, "Render as tabs")
	fs.BoolVar(&f.pills, "pills", false, "Render as pills")
	fs.BoolVar(&f.fill, "fill", false, "Stretch items to fill the width")
	fs.BoolVar(&f.justified, "justified", false, "Give every item the same width")
	fs.BoolVar(&f.dark, "dark", false, "Use dark dropdown menus")
	fs.BoolVar(&f.navbar, "navbar", false, "Render for a navbar")
	return cmd
}

func runRender(ctx context.Context, g *globalFlags, f *renderFlags, fs *pflag.FlagSet, out io.Writer) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := loadStack(cfg, logger)
	if err != nil {
		return err
	}
	c, err := s.registry.Resolve(cfg.Navigation.Container)
	if err != nil {
		return err
	}
	c = c.Clone()
	if f.active != "" && page.ActivatePath(c, f.active) == nil {
		logger.Warn("no page matches the active path", zap.String("active", f.active))
	}

	role := f.role
	if role == "" {
		role = cfg.ACL.DefaultRole
	}
	rcfg := menu.Config{
		Container: c,
		Resolver:  s.registry,
		Partials:  s.partials,
		Logger:    logger,
		Role:      role,
		MaxDepth:  maxDepth(cfg),
		MinDepth:  cfg.Navigation.MinDepth,
	}
	if s.acl != nil {
		rcfg.Authorizer = s.acl
		rcfg.UseACL = true
	}
	if s.bundle != nil {
		lang := f.lang
		if lang == "" {
			lang = s.bundle.Fallback()
		}
		rcfg.Translator = s.bundle.Translator(lang)
	}
	if f.strictEscaping {
		rcfg.Escaper = escape.Strict{}
	}
	r := menu.New(rcfg)

	if ctx == nil {
		ctx = context.Background()
	}
	var html string
	switch {
	case f.partial != "":
		html, err = r.RenderPartial(ctx, c, menu.PartialName(f.partial))
	case f.submenu:
		liActive := f.liActiveClass
		if liActive == "" {
			liActive = "active"
		}
		html, err = r.RenderSubMenu(c, f.ulClass, f.indent, liActive, f.options(fs)...)
	default:
		html, err = r.RenderMenu(c, f.options(fs)...)
	}
	if err != nil {
		return err
	}
	if html == "" {
		logger.Info("nothing to render", zap.String("container", cfg.Navigation.Container))
		return nil
	}
	_, err = fmt.Fprintln(out, html)
	return err
}

// options returns the render options for every flag set on the command line.
func (f *renderFlags) options(fs *pflag.FlagSet) []menu.Option {
	var opts []menu.Option
	if fs.Changed("max-depth") {
		if f.maxDepth < 0 {
			opts = append(opts, menu.WithoutMaxDepth())
		} else {
			opts = append(opts, menu.WithMaxDepth(f.maxDepth))
		}
	}
	if fs.Changed("min-depth") {
		opts = append(opts, menu.WithMinDepth(f.minDepth))
	}

	bools := []struct {
		name  string
		value bool
		opt   func(bool) menu.Option
	}{
		{"only-active", f.onlyActive, menu.WithOnlyActiveBranch},
		{"render-parents", f.renderParents, menu.WithRenderParents},
		{"escape-labels", f.escapeLabels, menu.WithEscapeLabels},
		{"class-on-li", f.classOnLi, menu.WithAddClassToListItem},
		{"tabs", f.tabs, menu.WithTabs},
		{"pills", f.pills, menu.WithPills},
		{"fill", f.fill, menu.WithFill},
		{"justified", f.justified, menu.WithJustified},
		{"dark", f.dark, menu.WithDark},
		{"navbar", f.navbar, menu.WithInNavbar},
	}
	for _, b := range bools {
		if fs.Changed(b.name) {
			opts = append(opts, b.opt(b.value))
		}
	}

	if f.style != "" {
		opts = append(opts, menu.WithStyle(menu.Style(f.style)))
	}
	if f.sublink != "" {
		opts = append(opts, menu.WithSublink(menu.SublinkStyle(f.sublink)))
	}
	if f.direction != "" {
		opts = append(opts, menu.WithDirection(menu.Direction(f.direction)))
	}
	if f.vertical != "" {
		opts = append(opts, menu.WithVertical(f.vertical))
	}
	if f.indent != "" {
		opts = append(opts, menu.WithIndent(f.indent))
	}
	if f.ulClass != "" {
		opts = append(opts, menu.WithUlClass(f.ulClass))
	}
	if f.liClass != "" {
		opts = append(opts, menu.WithLiClass(f.liClass))
	}
	if f.liActiveClass != "" {
		opts = append(opts, menu.WithLiActiveClass(f.liActiveClass))
	}
	return opts
}
