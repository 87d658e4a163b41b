package spapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/metrics"
)

// apiClient holds what every SP-API operation client shares: the regional
// endpoint, marketplace, HTTP transport and one rate limiter.
type apiClient struct {
	operation     string
	endpoint      string
	marketplaceID string
	userAgent     string
	client        *http.Client
	limiter       *RateLimiter
	tracer        trace.Tracer
	log           *slog.Logger
	nowFunc       func() time.Time
}

// ClientOption configures a catalog or pricing client.
type ClientOption func(*apiClient)

// WithEndpoint overrides the regional SP-API endpoint.
func WithEndpoint(u string) ClientOption {
	return func(c *apiClient) {
		c.endpoint = u
	}
}

// WithMarketplaceID overrides the default marketplace.
func WithMarketplaceID(id string) ClientOption {
	return func(c *apiClient) {
		c.marketplaceID = id
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *apiClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *apiClient) {
		c.client = hc
	}
}

// WithRateLimiter replaces the operation's default limiter.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *apiClient) {
		c.limiter = r
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *apiClient) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *apiClient) {
		c.log = l
	}
}

// WithClientNowFunc overrides the clock used for call timings.
func WithClientNowFunc(f func() time.Time) ClientOption {
	return func(c *apiClient) {
		c.nowFunc = f
	}
}

func newAPIClient(operation string, limiter *RateLimiter, opts []ClientOption) apiClient {
	c := apiClient{
		operation:     operation,
		endpoint:      config.DefaultEndpoint,
		marketplaceID: config.DefaultMarketplaceID,
		userAgent:     "ssello-gateway/1.0 (Language=Go)",
		client:        &http.Client{Timeout: 30 * time.Second},
		limiter:       limiter,
		tracer:        otel.Tracer(tracerName),
		log:           slog.Default(),
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// get issues an authenticated GET and returns the status code and body.
// Only transport and rate-limit failures are returned as errors; status
// interpretation is left to the caller.
func (c *apiClient) get(
	ctx context.Context,
	token, path string,
	params url.Values,
) (int, []byte, error) {
	ctx, span := c.tracer.Start(ctx, "spapi."+c.operation,
		trace.WithAttributes(
			attribute.String("spapi.operation", c.operation),
			attribute.String("spapi.path", path),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rate limited")
			return 0, nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	u := c.endpoint + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("x-amz-access-token", token)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := c.nowFunc()
	resp, err := c.client.Do(req)
	elapsed := c.nowFunc().Sub(start)
	metrics.SPAPICallDuration.WithLabelValues(c.operation).Observe(elapsed.Seconds())

	if err != nil {
		metrics.SPAPICallsTotal.WithLabelValues(c.operation, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return 0, nil, fmt.Errorf("executing %s request: %w", c.operation, err)
	}
	defer resp.Body.Close()

	metrics.SPAPICallsTotal.WithLabelValues(c.operation, strconv.Itoa(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading %s response: %w", c.operation, err)
	}

	c.log.InfoContext(ctx, "SP-API call completed",
		"operation", c.operation,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", elapsed,
	)

	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	return resp.StatusCode, body, nil
}
