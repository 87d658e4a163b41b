package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// probePaths are logged once on success and on every failure.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured
// fields. It reuses an inbound X-Request-ID or generates one, and echoes it
// on the response and in the echo context under "request_id".
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var seenProbe sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := statusOf(c, err)
			level := levelFor(status)

			if _, probe := probePaths[path]; probe {
				if status < http.StatusBadRequest {
					if _, loaded := seenProbe.LoadOrStore(path, struct{}{}); loaded {
						return err
					}
				} else {
					level = slog.LevelWarn
				}
			}

			log.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", reqID),
			)

			return err
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
