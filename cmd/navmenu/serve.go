package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-navigation/internal/navigation/observability"
	"finitefield.org/hanko-navigation/internal/preview/httpserver"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the menu preview server",
		Long: `The serve command exposes menu fragments and full preview pages over HTTP.

Example:
  navmenu serve --nav navigation.yaml --addr :8080
  curl 'localhost:8080/fragments/menu/main?path=/products&max_depth=1'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				g.overrides()["NAVMENU_HTTP_ADDR"] = addr
			}
			if basePath != "" {
				g.overrides()["NAVMENU_BASE_PATH"] = basePath
			}
			return runServe(cmd.Context(), g)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (NAVMENU_HTTP_ADDR)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "Path prefix of every route (NAVMENU_BASE_PATH)")
	return cmd
}

func runServe(parent context.Context, g *globalFlags) error {
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

	srv := httpserver.New(httpserver.Config{
		Address:      cfg.Server.Addr,
		BasePath:     cfg.Server.BasePath,
		Container:    cfg.Navigation.Container,
		Resolver:     s.registry,
		Bundle:       s.bundle,
		ACL:          s.acl,
		DefaultRole:  cfg.ACL.DefaultRole,
		Partials:     s.partials,
		MaxDepth:     maxDepth(cfg),
		MinDepth:     cfg.Navigation.MinDepth,
		Logger:       logger,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("preview server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("container", cfg.Navigation.Container),
	)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("preview server stopped")
	return nil
}
