package spapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/metrics"
	"github.com/donaldgifford/ssello-gateway/internal/tokencache"
)

const (
	tracerName    = "github.com/donaldgifford/ssello-gateway/internal/spapi"
	refreshBuffer = 60 * time.Second
)

// LWATokenProvider implements TokenProvider using the Login with Amazon
// refresh-token grant. Tokens are cached per credential fingerprint and
// reused until 60 seconds before the expiry LWA declares. Refreshes are
// serialized so concurrent callers share one exchange.
type LWATokenProvider struct {
	tokenURL string
	client   *http.Client
	cache    tokencache.Cache
	log      *slog.Logger
	tracer   trace.Tracer

	mu      sync.Mutex
	nowFunc func() time.Time
}

var _ TokenProvider = (*LWATokenProvider)(nil)

// AuthOption configures the LWATokenProvider.
type AuthOption func(*LWATokenProvider)

// WithTokenURL overrides the default LWA token endpoint.
func WithTokenURL(u string) AuthOption {
	return func(p *LWATokenProvider) {
		p.tokenURL = u
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(p *LWATokenProvider) {
		p.client = c
	}
}

// WithTokenCache sets the cache tokens are stored in.
func WithTokenCache(c tokencache.Cache) AuthOption {
	return func(p *LWATokenProvider) {
		p.cache = c
	}
}

// WithAuthLogger sets the provider logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(p *LWATokenProvider) {
		p.log = l
	}
}

// WithAuthTracerProvider overrides the global tracer provider.
func WithAuthTracerProvider(tp trace.TracerProvider) AuthOption {
	return func(p *LWATokenProvider) {
		p.tracer = tp.Tracer(tracerName)
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) AuthOption {
	return func(p *LWATokenProvider) {
		p.nowFunc = f
	}
}

// NewLWATokenProvider creates a token provider with an in-memory cache
// unless WithTokenCache says otherwise.
func NewLWATokenProvider(opts ...AuthOption) *LWATokenProvider {
	p := &LWATokenProvider{
		tokenURL: config.DefaultTokenURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = tokencache.NewMemory(tokencache.WithNowFunc(p.nowFunc))
	}
	return p
}

type lwaTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns an access token for creds, exchanging the refresh token
// when no sufficiently fresh cached token exists.
func (p *LWATokenProvider) Token(ctx context.Context, creds Credentials) (string, error) {
	key := creds.Fingerprint()

	p.mu.Lock()
	defer p.mu.Unlock()

	entry, err := p.cache.Get(ctx, key)
	switch {
	case err == nil && p.nowFunc().Before(entry.ExpiresAt.Add(-refreshBuffer)):
		metrics.TokenCacheHitsTotal.Inc()
		return entry.Token, nil
	case err != nil && !errors.Is(err, tokencache.ErrNotFound):
		p.log.WarnContext(ctx, "token cache lookup failed", "error", err)
	}

	return p.exchange(ctx, creds, key)
}

func (p *LWATokenProvider) exchange(ctx context.Context, creds Credentials, key string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "lwa.exchange")
	defer span.End()

	token, expiresIn, err := p.post(ctx, creds)
	if err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "token exchange failed")
		return "", err
	}
	metrics.TokenExchangesTotal.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("lwa.expires_in", expiresIn))

	if expiresIn > 0 {
		e := tokencache.Entry{
			Token:     token,
			ExpiresAt: p.nowFunc().Add(time.Duration(expiresIn) * time.Second),
		}
		if err := p.cache.Put(ctx, key, e); err != nil {
			p.log.WarnContext(ctx, "token cache store failed", "error", err)
		}
	}

	p.log.DebugContext(ctx, "exchanged LWA refresh token",
		"credentials", creds,
		"expires_in", expiresIn,
	)

	return token, nil
}

func (p *LWATokenProvider) post(ctx context.Context, creds Credentials) (string, int, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {creds.RefreshToken},
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, &AuthenticationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, &AuthenticationError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp lwaTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, &AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("parsing token response: %w", err),
		}
	}
	if tokenResp.AccessToken == "" {
		return "", 0, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}
