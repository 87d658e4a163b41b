package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/ssello-gateway/internal/metrics"
)

// unmatchedPath labels requests that matched no route, keeping label
// cardinality bounded.
const unmatchedPath = "unmatched"

// metricsSkipPaths are excluded from the request histogram and counter.
var metricsSkipPaths = map[string]struct{}{
	"/metrics":      {},
	"/healthz":      {},
	"/readyz":       {},
	"/docs":         {},
	"/openapi.json": {},
	"/openapi.yaml": {},
}

// healthGauges maps probe paths to their 0/1 gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Probe paths only update their up/down gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				err := next(c)
				updateHealthGauge(c.Request().URL.Path, c.Response().Status)
				return err
			}

			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}
			status := strconv.Itoa(statusOf(c, err))
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// statusOf returns the status the client will see. Errors not yet written
// by Echo's error handler are resolved from their HTTPError code.
func statusOf(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
