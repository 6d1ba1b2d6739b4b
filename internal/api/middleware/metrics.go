// Package middleware provides Echo middleware for crop-advisor.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping raw
// URLs out of the label set.
const unmatchedRoute = "unmatched"

// probeGauges lists paths scraped or polled often enough that per-request
// series would drown the API traffic. They update an up gauge instead, or
// nothing when the gauge is nil.
var probeGauges = map[string]prometheus.Gauge{
	"/metrics": nil,
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and count
// by method, route template, and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := responseStatus(c, err)

			route := c.Path()
			if route == "" || errors.Is(err, echo.ErrNotFound) {
				route = unmatchedRoute
			}

			if gauge, probe := probeGauges[route]; probe {
				if gauge != nil {
					gauge.Set(boolToFloat(status >= 200 && status < 300))
				}
				return err
			}

			labels := []string{c.Request().Method, route, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}

// responseStatus returns the status the client will see. An error that echo
// has not rendered yet still reports 200 on the response, so its code is
// taken from the error instead.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
