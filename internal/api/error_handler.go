package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

var notFoundMessages = []struct {
	err error
	msg string
}{
	{domain.ErrNoUsers, "No users found"},
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrNoUserPosts, "No posts found for this user"},
	{domain.ErrNoPosts, "No posts found"},
	{domain.ErrPostNotFound, "Post not found"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as {"errors": [...]} with 400.
//   - Renders not-found results as {"message": "..."} with 404.
//   - Maps the remaining known errors to {"error": "..."}.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, c echo.Context) (int, any) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		if len(verrs) > 0 {
			metrics.ValidationFailuresTotal.WithLabelValues(string(verrs[0].Location)).Inc()
		}
		return http.StatusBadRequest, validationErrorResponse{Errors: verrs}
	}

	// Echo's own errors (auth middleware, 404/405 from the router, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if domain.IsNotFound(err) {
		for _, nf := range notFoundMessages {
			if errors.Is(err, nf.err) {
				return http.StatusNotFound, messageResponse{Message: nf.msg}
			}
		}
		return http.StatusNotFound, messageResponse{Message: "Not found"}
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorResponse{Error: "User with this email already exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"}
	}

	logger.FromContext(c.Request().Context()).Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "Database query failed!"}
}
