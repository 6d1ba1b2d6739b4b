package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/crop-advisor/pkg/logger"
)

const problemContentType = "application/problem+json"

// problem mirrors the RFC 9457 body huma writes for its own errors, so a
// recovered panic looks like any other API failure to clients.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Recovery returns Echo middleware that turns a handler panic into a 500
// problem response. The stack is logged with the request-scoped logger when
// RequestLog runs first. Nothing is written if the handler had already
// committed a response.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				buf := make([]byte, 8192)
				n := runtime.Stack(buf, false)

				logger.FromContext(c.Request().Context(), log).Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"committed", c.Response().Committed,
					"stack", string(buf[:n]),
				)

				if c.Response().Committed {
					err = nil
					return
				}

				c.Response().Header().Set(echo.HeaderContentType, problemContentType)
				err = c.JSON(http.StatusInternalServerError, problem{
					Title:  http.StatusText(http.StatusInternalServerError),
					Status: http.StatusInternalServerError,
					Detail: "unexpected failure handling the request",
				})
			}()
			return next(c)
		}
	}
}
