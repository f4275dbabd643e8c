package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/pkg/logger"
)

func TestRequestLogger_ScopesLoggerAndLogsAccess(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(RequestLogger(base))
	e.GET("/ping", func(c echo.Context) error {
		logger.FromContext(c.Request().Context()).Info().Msg("inside handler")
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if bytes.Count(buf.Bytes(), []byte(`"request_id":"req-123"`)) != 2 {
		t.Fatalf("expected handler and access lines tagged with request id, got %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"status":200`)) || !bytes.Contains(buf.Bytes(), []byte(`"uri":"/ping"`)) {
		t.Fatalf("access line missing fields: %s", out)
	}
}
