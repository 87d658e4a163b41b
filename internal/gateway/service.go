// Package gateway orchestrates credential resolution, token acquisition and
// the SP-API catalog and pricing calls behind the HTTP handlers.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/metrics"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// Request validation errors.
var (
	ErrEmptyQuery      = errors.New("query parameter is required")
	ErrEmptyIdentifier = errors.New("identifier is required")
)

// Search outcomes recorded in metrics.
const (
	outcomeFound         = "found"
	outcomeEmpty         = "empty"
	outcomeConfigError   = "config_error"
	outcomeAuthError     = "auth_error"
	outcomeUpstreamError = "upstream_error"
	outcomeDegraded      = "degraded"
)

// SearchResult is the outcome of one catalog search. Items is never nil.
type SearchResult struct {
	Items []domain.CatalogItem
}

// CatalogService is the behavior the HTTP layer depends on.
type CatalogService interface {
	Search(ctx context.Context, req domain.SearchRequest) (*SearchResult, error)
	Buybox(ctx context.Context, asin string) (domain.BuyboxResult, error)
	Status() domain.CredentialStatus
}

// Service implements CatalogService on top of the SP-API clients.
type Service struct {
	amazon  config.AmazonConfig
	tokens  spapi.TokenProvider
	catalog spapi.CatalogClient
	pricing spapi.PricingClient
	log     *slog.Logger
	nowFunc func() time.Time
}

var _ CatalogService = (*Service)(nil)

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = l
	}
}

// WithNowFunc overrides the clock used for timing logs.
func WithNowFunc(f func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = f
	}
}

// NewService creates a Service. Credentials are resolved from amazon on
// every request, so a gateway without credentials still serves status and
// health endpoints.
func NewService(
	amazon config.AmazonConfig,
	tokens spapi.TokenProvider,
	catalog spapi.CatalogClient,
	pricing spapi.PricingClient,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		amazon:  amazon,
		tokens:  tokens,
		catalog: catalog,
		pricing: pricing,
		log:     slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) marketplaceID() string {
	if s.amazon.MarketplaceID == "" {
		return config.DefaultMarketplaceID
	}
	return s.amazon.MarketplaceID
}

// Search resolves credentials, obtains a token, dispatches req and
// normalizes the upstream items. The returned result is non-nil even when
// err is set.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (*SearchResult, error) {
	result := &SearchResult{Items: []domain.CatalogItem{}}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return result, ErrEmptyQuery
	}
	searchType, err := domain.ParseSearchType(string(req.Type))
	if err != nil {
		return result, fmt.Errorf("%w: %q", spapi.ErrUnsupportedSearchType, req.Type)
	}
	req.Type = searchType

	start := s.nowFunc()
	s.log.InfoContext(ctx, "starting catalog search", "query", req.Query, "type", req.Type)

	outcome, err := s.search(ctx, req, result)
	metrics.SearchesTotal.WithLabelValues(string(req.Type), outcome).Inc()

	elapsed := s.nowFunc().Sub(start)
	if err != nil {
		s.log.ErrorContext(ctx, "catalog search failed",
			"query", req.Query,
			"type", req.Type,
			"outcome", outcome,
			"elapsed", elapsed,
			"error", err,
		)
		return result, err
	}

	s.log.InfoContext(ctx, "catalog search completed",
		"query", req.Query,
		"type", req.Type,
		"items", len(result.Items),
		"elapsed", elapsed,
	)
	return result, nil
}

func (s *Service) search(ctx context.Context, req domain.SearchRequest, result *SearchResult) (string, error) {
	creds, err := spapi.ResolveCredentials(s.amazon)
	if err != nil {
		return outcomeConfigError, err
	}

	token, err := s.tokens.Token(ctx, creds)
	if err != nil {
		return outcomeAuthError, fmt.Errorf("acquiring access token: %w", err)
	}

	raw, err := s.catalog.Dispatch(ctx, token, req)
	if err != nil {
		return outcomeUpstreamError, fmt.Errorf("dispatching %s search: %w", req.Type, err)
	}

	result.Items = spapi.NormalizeAll(raw, s.marketplaceID(), s.log)
	if len(result.Items) == 0 {
		return outcomeEmpty, nil
	}
	return outcomeFound, nil
}

// Buybox returns the best-effort competitive pricing for asin. Only a
// configuration problem is reported as an error; every other failure
// degrades to the zero result.
func (s *Service) Buybox(ctx context.Context, asin string) (domain.BuyboxResult, error) {
	asin = strings.TrimSpace(asin)
	result := domain.BuyboxResult{ASIN: asin}
	if asin == "" {
		return result, ErrEmptyIdentifier
	}

	creds, err := spapi.ResolveCredentials(s.amazon)
	if err != nil {
		metrics.BuyboxLookupsTotal.WithLabelValues(outcomeConfigError).Inc()
		return result, err
	}

	start := s.nowFunc()
	s.log.InfoContext(ctx, "looking up buy box", "asin", asin)

	body, err := s.fetchPricing(ctx, creds, asin)
	if err != nil {
		metrics.BuyboxLookupsTotal.WithLabelValues(outcomeDegraded).Inc()
		s.log.WarnContext(ctx, "could not get competitive pricing",
			"asin", asin,
			"error", err,
		)
		return result, nil
	}

	result = spapi.ExtractBuybox(asin, body)
	outcome := outcomeFound
	if result.BuyboxPrice == 0 {
		outcome = outcomeEmpty
	}
	metrics.BuyboxLookupsTotal.WithLabelValues(outcome).Inc()

	s.log.InfoContext(ctx, "buy box lookup completed",
		"asin", asin,
		"buybox_price", result.BuyboxPrice,
		"elapsed", s.nowFunc().Sub(start),
	)
	return result, nil
}

func (s *Service) fetchPricing(ctx context.Context, creds spapi.Credentials, asin string) ([]byte, error) {
	token, err := s.tokens.Token(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("acquiring access token: %w", err)
	}
	return s.pricing.CompetitivePricing(ctx, token, asin)
}

// Status reports which credentials are configured.
func (s *Service) Status() domain.CredentialStatus {
	return spapi.CredentialStatus(s.amazon)
}
