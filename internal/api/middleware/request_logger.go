package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/pkg/logger"
)

// RequestLogger puts a request-scoped logger (carrying the request id) on the
// request context and writes one access log line per request. It must run
// after echo's RequestID middleware.
func RequestLogger(base zerolog.Logger) echo.MiddlewareFunc {
	access := echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := logger.FromContext(c.Request().Context()).Info()
			if v.Error != nil || v.Status >= 500 {
				ev = logger.FromContext(c.Request().Context()).Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		logged := access(next)
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			l := base.With().Str("request_id", reqID).Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), l)))
			return logged(c)
		}
	}
}
