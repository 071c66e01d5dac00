package main

import (
	"github.com/spf13/cobra"

	"finitefield.org/hanko-navigation/internal/navigation/config"
)

// globalFlags are shared by every subcommand and override the environment.
type globalFlags struct {
	envFile   string
	navFile   string
	container string
	logLevel  string

	extra map[string]string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "navmenu",
		Short: "Render Bootstrap navigation menus from a page tree",
		Long: `navmenu loads a YAML page tree and renders it as Bootstrap navigation
markup, either once to stdout or continuously through a preview server.

Settings come from NAVMENU_* environment variables and an optional .env file;
flags take precedence over both.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Path of the .env file with local overrides")
	root.PersistentFlags().StringVar(&g.navFile, "nav", "", "Navigation YAML file (NAVMENU_NAV_FILE)")
	root.PersistentFlags().StringVar(&g.container, "container", "", "Container to render (NAVMENU_CONTAINER)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (LOG_LEVEL)")

	root.AddCommand(newRenderCmd(g), newServeCmd(g))
	return root
}

// overrides returns the environment keys set by subcommand flags.
func (g *globalFlags) overrides() map[string]string {
	if g.extra == nil {
		g.extra = map[string]string{}
	}
	return g.extra
}

// load resolves the configuration with flag values layered on top.
func (g *globalFlags) load() (config.Config, error) {
	overrides := map[string]string{}
	for k, v := range g.extra {
		overrides[k] = v
	}
	if g.navFile != "" {
		overrides["NAVMENU_NAV_FILE"] = g.navFile
	}
	if g.container != "" {
		overrides["NAVMENU_CONTAINER"] = g.container
	}
	if g.logLevel != "" {
		overrides["LOG_LEVEL"] = g.logLevel
	}
	return config.Load(config.WithEnvFile(g.envFile), config.WithEnvMap(overrides))
}
