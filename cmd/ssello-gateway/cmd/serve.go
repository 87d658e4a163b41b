package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	"github.com/donaldgifford/ssello-gateway/internal/telemetry"
	"github.com/donaldgifford/ssello-gateway/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewWithOptions(cmd.ErrOrStderr(), logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Attrs: []slog.Attr{
			slog.String("service", cfg.Telemetry.ServiceName),
			slog.String("version", Version),
		},
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	if _, err := spapi.ResolveCredentials(cfg.Amazon); err != nil {
		log.Warn("amazon credentials incomplete, catalog requests will fail until configured", "error", err)
	}

	addr := cfg.Server.Addr()
	log.Info("starting server",
		"addr", addr,
		"endpoint", cfg.Amazon.Endpoint,
		"marketplace", cfg.Amazon.MarketplaceID,
		"token_cache", cfg.TokenCache.Backend,
		"tracing", cfg.Telemetry.Enabled(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("flushing traces", "error", err)
	}
	if err := a.Close(); err != nil {
		log.Warn("closing token cache", "error", err)
	}

	log.Info("server stopped")
	return nil
}
