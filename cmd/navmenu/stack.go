package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/acl"
	"finitefield.org/hanko-navigation/internal/navigation/config"
	"finitefield.org/hanko-navigation/internal/navigation/i18n"
	"finitefield.org/hanko-navigation/internal/navigation/page"
	"finitefield.org/hanko-navigation/internal/navigation/partial"
)

// stack holds the collaborators loaded from the configured files.
type stack struct {
	registry *page.Registry
	acl      *acl.ACL
	bundle   *i18n.Bundle
	partials partial.Renderer
}

func loadStack(cfg config.Config, logger *zap.Logger) (*stack, error) {
	reg, err := page.LoadFile(cfg.Navigation.File)
	if err != nil {
		return nil, err
	}
	s := &stack{registry: reg}

	if cfg.ACL.File != "" {
		s.acl, err = acl.LoadFile(cfg.ACL.File)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("acl file not set; pages are not filtered by role")
	}

	if cfg.Locale.Dir != "" {
		s.bundle, err = i18n.Load(os.DirFS(cfg.Locale.Dir), cfg.Locale.Fallback, cfg.Locale.Supported)
		if err != nil {
			return nil, err
		}
	}

	builtin := partial.NewRegistry()
	s.partials = builtin
	if cfg.Navigation.PartialsDir != "" {
		tmpl, err := partial.ParseFS(os.DirFS(cfg.Navigation.PartialsDir), nil)
		if err != nil {
			return nil, fmt.Errorf("load partials from %s: %w", cfg.Navigation.PartialsDir, err)
		}
		s.partials = partial.Chain{tmpl, builtin}
	}

	logger.Debug("navigation loaded",
		zap.String("file", cfg.Navigation.File),
		zap.Strings("containers", reg.Names()),
	)
	return s, nil
}

func maxDepth(cfg config.Config) *int {
	if !cfg.Navigation.HasMaxDepth() {
		return nil
	}
	depth := cfg.Navigation.MaxDepth
	return &depth
}
