package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ssello-gateway/internal/api"
	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/gateway"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	"github.com/donaldgifford/ssello-gateway/internal/tokencache"
	"github.com/donaldgifford/ssello-gateway/pkg/logger"
)

// app is the fully wired server.
type app struct {
	echo    *echo.Echo
	cache   tokencache.Cache
	closers []io.Closer
}

// buildApp wires the token cache, SP-API clients, service and router from
// cfg. It performs no upstream calls.
func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	cache, err := tokencache.New(ctx, cfg.TokenCache)
	if err != nil {
		return nil, fmt.Errorf("creating token cache: %w", err)
	}

	a := &app{cache: cache}
	if c, ok := cache.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	httpClient := &http.Client{Timeout: cfg.Amazon.Timeout}
	spLog := logger.Component(log, "spapi")

	tokens := spapi.NewLWATokenProvider(
		spapi.WithTokenURL(cfg.Amazon.TokenURL),
		spapi.WithAuthHTTPClient(httpClient),
		spapi.WithTokenCache(cache),
		spapi.WithAuthLogger(spLog),
	)

	catalogLimiter := spapi.NewRateLimiterFromConfig(spapi.OperationCatalog, cfg.Amazon.RateLimits.Catalog)
	pricingLimiter := spapi.NewRateLimiterFromConfig(spapi.OperationPricing, cfg.Amazon.RateLimits.Pricing)

	clientOpts := []spapi.ClientOption{
		spapi.WithEndpoint(cfg.Amazon.Endpoint),
		spapi.WithMarketplaceID(cfg.Amazon.MarketplaceID),
		spapi.WithUserAgent(cfg.Amazon.UserAgent),
		spapi.WithHTTPClient(httpClient),
		spapi.WithLogger(spLog),
	}
	catalog := spapi.NewCatalogClient(append(clientOpts, spapi.WithRateLimiter(catalogLimiter))...)
	pricing := spapi.NewPricingClient(append(clientOpts, spapi.WithRateLimiter(pricingLimiter))...)

	svc := gateway.NewService(cfg.Amazon, tokens, catalog, pricing,
		gateway.WithLogger(logger.Component(log, "gateway")),
	)

	a.echo, _ = api.NewRouter(api.Deps{
		Service:     svc,
		Cache:       cache,
		Limiters:    []*spapi.RateLimiter{catalogLimiter, pricingLimiter},
		CORSOrigins: cfg.Server.CORSOrigins,
		Version:     Version,
		Logger:      logger.Component(log, "http"),
	})
	a.echo.Server.ReadTimeout = cfg.Server.ReadTimeout
	a.echo.Server.WriteTimeout = cfg.Server.WriteTimeout

	return a, nil
}

// Close releases the token cache connection, if any.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
