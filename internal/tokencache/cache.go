// Package tokencache stores LWA access tokens keyed by credential
// fingerprint so repeated requests reuse a token until it nears expiry.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donaldgifford/ssello-gateway/internal/config"
)

// ErrNotFound is returned when no unexpired token exists for a key.
var ErrNotFound = errors.New("token not found")

// Entry is one cached access token.
type Entry struct {
	Token     string
	ExpiresAt time.Time
}

// Cache defines token storage used by the LWA token provider.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, e Entry) error
	Ping(ctx context.Context) error
}

// New builds the cache selected by cfg.
func New(ctx context.Context, cfg config.TokenCacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		client, err := Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedis(client, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown token cache backend %q", cfg.Backend)
	}
}
