package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/ports"
	"github.com/inkwell/blog-api/pkg/logger"
)

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

// Idempotency replays the first successful response recorded for an
// Idempotency-Key. Requests without the header, and every request when store
// is nil, pass straight through. Store failures never fail the request.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if store == nil {
			return next
		}
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			log := logger.FromContext(ctx)
			scope := scopeKey(c, key)

			stored, err := store.Load(ctx, scope)
			if err != nil {
				log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
			}
			if stored != nil {
				metrics.IdempotentReplaysTotal.Inc()
				log.Info().Str("idempotency_key", key).Msg("idempotent replay")
				c.Response().Header().Set(HeaderIdempotentReplayed, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}

			record := echomiddleware.BodyDumpWithConfig(echomiddleware.BodyDumpConfig{
				Handler: func(c echo.Context, _, resBody []byte) {
					status := c.Response().Status
					if status < http.StatusOK || status >= http.StatusMultipleChoices {
						return
					}
					resp := ports.StoredResponse{
						Status:      status,
						ContentType: c.Response().Header().Get(echo.HeaderContentType),
						Body:        resBody,
					}
					if err := store.Save(c.Request().Context(), scope, resp, ttl); err != nil {
						log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency save failed")
					}
				},
			})
			return record(next)(c)
		}
	}
}

// scopeKey binds a client key to the route and, when authenticated, the caller.
func scopeKey(c echo.Context, key string) string {
	scope := c.Request().Method + ":" + c.Request().URL.Path + ":"
	if id, ok := IdentityFrom(c); ok {
		scope += strconv.FormatInt(id.UserID, 10)
	}
	return scope + ":" + key
}
