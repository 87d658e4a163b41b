// Package metrics defines Prometheus metrics for ssello-gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ssello"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// SP-API metrics.
var (
	SPAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spapi_calls_total",
		Help:      "Total SP-API calls by operation and HTTP status.",
	}, []string{"operation", "status"})

	SPAPICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "spapi_call_duration_seconds",
		Help:      "Duration of SP-API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	SPAPIDailyUsage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "spapi_daily_usage",
		Help:      "Current SP-API call count within the rolling 24-hour window.",
	}, []string{"operation"})

	SPAPIDailyLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spapi_daily_limit_hits_total",
		Help:      "Total number of times a daily SP-API budget was exhausted.",
	}, []string{"operation"})
)

// Token metrics.
var (
	TokenExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lwa_token_exchanges_total",
		Help:      "Total LWA refresh-token exchanges by result (success, failure).",
	}, []string{"result"})

	TokenCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lwa_token_cache_hits_total",
		Help:      "Total access tokens served from the token cache.",
	})
)

// Catalog metrics.
var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_searches_total",
		Help:      "Total catalog searches by search type and outcome.",
	}, []string{"type", "outcome"})

	NormalizedItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_items_normalized_total",
		Help:      "Total upstream catalog items normalized.",
	})

	NormalizationWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_normalization_warnings_total",
		Help:      "Total upstream catalog items skipped as malformed.",
	})
)

// Pricing metrics.
var (
	BuyboxLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "buybox_lookups_total",
		Help:      "Total buy-box lookups by outcome (found, empty, degraded).",
	}, []string{"outcome"})
)
