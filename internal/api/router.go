// Package api assembles the Echo server, the Huma API and the middleware
// chain that front the catalog gateway.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/ssello-gateway/internal/api/handlers"
	"github.com/donaldgifford/ssello-gateway/internal/api/middleware"
	"github.com/donaldgifford/ssello-gateway/internal/gateway"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
)

const apiTitle = "Ssello Catalog Gateway"

// Deps holds everything the router wires into handlers.
type Deps struct {
	Service     gateway.CatalogService
	Cache       handlers.Pinger
	Limiters    []*spapi.RateLimiter
	CORSOrigins []string
	Version     string
	Logger      *slog.Logger
}

// NewRouter builds the Echo instance with all routes registered. The
// returned huma.API is exposed for OpenAPI export.
func NewRouter(d Deps) (*echo.Echo, huma.API) {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.CORS(d.CORSOrigins))

	health := handlers.NewHealthHandler(d.Cache)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	cfg := huma.DefaultConfig(apiTitle, d.Version)
	cfg.Info.Description = "Proxies Amazon SP-API catalog search and buy-box pricing for the Ssello dashboard."
	api := humaecho.New(e, cfg)

	catalog := handlers.NewCatalogHandler(d.Service)
	handlers.RegisterCatalogRoutes(api, catalog)
	e.GET("/catalog/buybox/", catalog.MissingIdentifier)

	handlers.RegisterStatusRoutes(api, handlers.NewStatusHandler(d.Service, d.Version))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(d.Limiters...))

	return e, api
}
