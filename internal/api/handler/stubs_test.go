package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// --- Stubs ---

type stubUserService struct {
	listFn   func(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) (int64, error)
}

func (s *stubUserService) ListUsers(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	return s.listFn(ctx, opts)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	return s.deleteFn(ctx, id)
}

type stubPostService struct {
	listFn     func(ctx context.Context, opts ports.ListOptions) ([]*domain.Post, error)
	getFn      func(ctx context.Context, id string) (*domain.Post, error)
	listUserFn func(ctx context.Context, authorID int64, opts ports.ListOptions) ([]*domain.Post, error)
	createFn   func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error)
	updateFn   func(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubPostService) ListPosts(ctx context.Context, opts ports.ListOptions) ([]*domain.Post, error) {
	return s.listFn(ctx, opts)
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) ListUserPosts(ctx context.Context, authorID int64, opts ports.ListOptions) ([]*domain.Post, error) {
	return s.listUserFn(ctx, authorID, opts)
}

func (s *stubPostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, input)
}

func (s *stubPostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, input)
}

func (s *stubPostService) DeletePost(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// --- Helpers ---

// newContext builds an echo context with the validation pipeline registered.
// params alternates name, value.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func validationErrors(err error) validation.Errors {
	errs, _ := err.(validation.Errors)
	return errs
}
