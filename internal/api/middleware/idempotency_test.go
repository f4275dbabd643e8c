package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/ports"
)

type stubIdempotencyStore struct {
	data    map[string]ports.StoredResponse
	loadErr error
	saves   int
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{data: make(map[string]ports.StoredResponse)}
}

func (s *stubIdempotencyStore) Load(_ context.Context, key string) (*ports.StoredResponse, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	resp, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

func (s *stubIdempotencyStore) Save(_ context.Context, key string, resp ports.StoredResponse, _ time.Duration) error {
	s.saves++
	if _, exists := s.data[key]; !exists {
		s.data[key] = resp
	}
	return nil
}

func newIdempotentEcho(store ports.IdempotencyStore, status int, calls *int) *echo.Echo {
	e := echo.New()
	e.POST("/api/users", func(c echo.Context) error {
		*calls++
		return c.JSON(status, map[string]any{"id": *calls, "message": "User created!"})
	}, Idempotency(store, time.Hour))
	return e
}

func post(e *echo.Echo, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysFirstResponse(t *testing.T) {
	store := newStubIdempotencyStore()
	calls := 0
	e := newIdempotentEcho(store, http.StatusCreated, &calls)

	first := post(e, "abc")
	second := post(e, "abc")

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if second.Header().Get(HeaderIdempotentReplayed) != "true" {
		t.Fatalf("replay header missing")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Fatalf("unexpected content type %q", second.Header().Get(echo.HeaderContentType))
	}
}

func TestIdempotency_DifferentKeysAndNoKey(t *testing.T) {
	store := newStubIdempotencyStore()
	calls := 0
	e := newIdempotentEcho(store, http.StatusCreated, &calls)

	post(e, "a")
	post(e, "b")
	post(e, "")
	post(e, "")

	if calls != 4 {
		t.Fatalf("expected 4 handler calls, got %d", calls)
	}
	if len(store.data) != 2 {
		t.Fatalf("expected 2 stored responses, got %d", len(store.data))
	}
}

func TestIdempotency_DoesNotStoreFailures(t *testing.T) {
	store := newStubIdempotencyStore()
	calls := 0
	e := newIdempotentEcho(store, http.StatusBadRequest, &calls)

	post(e, "k")
	post(e, "k")

	if calls != 2 {
		t.Fatalf("failed responses must not be replayed, handler ran %d times", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestIdempotency_StoreErrorFailsOpen(t *testing.T) {
	store := newStubIdempotencyStore()
	store.loadErr = errors.New("redis down")
	calls := 0
	e := newIdempotentEcho(store, http.StatusCreated, &calls)

	rec := post(e, "k")
	if rec.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("expected request to proceed, got %d after %d calls", rec.Code, calls)
	}
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	calls := 0
	e := newIdempotentEcho(nil, http.StatusCreated, &calls)

	post(e, "k")
	post(e, "k")
	if calls != 2 {
		t.Fatalf("expected passthrough, got %d calls", calls)
	}
}
