package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/crop-advisor/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// probePaths are logged on their first success and on every failure only.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided, echoes it in the response
// header, and stores a request-scoped logger carrying it in the request
// context for handlers to pick up with logger.FromContext.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probeSeen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			reqLog := log.With("request_id", reqID)
			ctx := logger.WithContext(c.Request().Context(), reqLog)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Request().URL.Path
			status := c.Response().Status
			ok := status < 400

			_, probe := probePaths[path]
			if probe && ok {
				if _, seen := probeSeen.LoadOrStore(path, struct{}{}); seen {
					return nil
				}
			}

			level := slog.LevelInfo
			switch {
			case status >= 500 && !probe:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			reqLog.Log(ctx, level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return nil
		}
	}
}
