package tokencache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect initializes a Redis client from a redis:// URL or host:port.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// Redis stores tokens in Redis hashes so several gateway replicas share one
// token per credential pair. Keys expire with the token.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Cache = (*Redis)(nil)

// NewRedis creates a Redis-backed token cache.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get returns the entry for key, or ErrNotFound when absent or expired.
func (r *Redis) Get(ctx context.Context, key string) (Entry, error) {
	data, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("reading token: %w", err)
	}
	if len(data) == 0 || data["token"] == "" {
		return Entry{}, ErrNotFound
	}

	unix, err := strconv.ParseInt(data["expires_at"], 10, 64)
	if err != nil {
		return Entry{}, ErrNotFound
	}

	e := Entry{Token: data["token"], ExpiresAt: time.Unix(unix, 0).UTC()}
	if !time.Now().Before(e.ExpiresAt) {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Put stores e under key with a TTL matching the token expiry.
func (r *Redis) Put(ctx context.Context, key string, e Entry) error {
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	redisKey := r.prefix + key
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, redisKey, "token", e.Token, "expires_at", e.ExpiresAt.Unix())
		p.Expire(ctx, redisKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
