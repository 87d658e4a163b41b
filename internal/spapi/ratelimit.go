package spapi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/metrics"
)

// Operation names used for rate limiting, metrics and tracing.
const (
	OperationCatalog = "catalog"
	OperationPricing = "pricing"
)

// ErrDailyLimitReached is returned when an operation's daily budget is spent.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// RateLimiter throttles one SP-API operation with a token bucket and an
// optional rolling 24-hour budget. A maxDaily of zero disables the budget.
type RateLimiter struct {
	operation string
	limiter   *rate.Limiter
	daily     atomic.Int64
	maxDaily  int64
	resetAt   time.Time
	mu        sync.Mutex
	nowFunc   func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter for operation.
func NewRateLimiter(
	operation string,
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		operation: operation,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily:  maxDaily,
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// NewRateLimiterFromConfig builds a limiter from a rate limit section.
func NewRateLimiterFromConfig(
	operation string,
	cfg config.RateLimitConfig,
	opts ...RateLimiterOption,
) *RateLimiter {
	return NewRateLimiter(operation, cfg.PerSecond, cfg.Burst, cfg.DailyLimit, opts...)
}

// Wait blocks until the call is allowed or ctx is done. It returns
// ErrDailyLimitReached once the daily budget is exhausted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.checkDailyReset()

	if r.maxDaily > 0 && r.daily.Load() >= r.maxDaily {
		metrics.SPAPIDailyLimitHits.WithLabelValues(r.operation).Inc()
		return fmt.Errorf("%w for %s (%d/%d)", ErrDailyLimitReached, r.operation, r.daily.Load(), r.maxDaily)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	metrics.SPAPIDailyUsage.WithLabelValues(r.operation).Set(float64(r.daily.Add(1)))
	return nil
}

// Operation returns the operation this limiter guards.
func (r *RateLimiter) Operation() string {
	return r.operation
}

// DailyCount returns the calls made in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.checkDailyReset()
	return r.daily.Load()
}

// MaxDaily returns the configured daily budget, zero when unlimited.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the calls left in the current window, or -1 when the
// budget is unlimited.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily == 0 {
		return -1
	}
	remaining := r.maxDaily - r.DailyCount()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.checkDailyReset()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) checkDailyReset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
		metrics.SPAPIDailyUsage.WithLabelValues(r.operation).Set(0)
	}
}
