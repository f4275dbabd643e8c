package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

func TestUserHandler_Create_Success(t *testing.T) {
	var got ports.CreateUserInput
	h := NewUserHandler(&stubUserService{
		createFn: func(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: 7, Username: in.Username, Email: in.Email}, nil
		},
	})

	c, rec := newContext(http.MethodPost, "/api/users",
		`{"username":"  alice ","email":" Alice@Example.COM ","password":"  secret1 "}`)
	if err := validation.Validate(validation.Body[createUserRequest]())(h.Create)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp userCreatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 7 || resp.Message != "User created!" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" || got.Password != "secret1" {
		t.Fatalf("input not sanitized: %+v", got)
	}
}

func TestUserHandler_Create_EscapesUsername(t *testing.T) {
	var got ports.CreateUserInput
	h := NewUserHandler(&stubUserService{
		createFn: func(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: 1}, nil
		},
	})

	c, _ := newContext(http.MethodPost, "/api/users",
		`{"username":"<b>bob</b>","email":"bob@example.com","password":"secret1"}`)
	if err := validation.Validate(validation.Body[createUserRequest]())(h.Create)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "&lt;b&gt;bob&lt;/b&gt;" {
		t.Fatalf("expected escaped username, got %q", got.Username)
	}
}

func TestUserHandler_Create_ValidationErrors(t *testing.T) {
	called := false
	h := NewUserHandler(&stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			called = true
			return nil, nil
		},
	})

	c, _ := newContext(http.MethodPost, "/api/users", `{"username":"al","email":"nope","password":"123"}`)
	err := validation.Validate(validation.Body[createUserRequest]())(h.Create)(c)

	errs := validationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", err)
	}
	for _, f := range []string{"username", "email", "password"} {
		if !errs.Has(f) {
			t.Fatalf("expected error for %s, got %v", f, errs)
		}
	}
	for _, fe := range errs {
		if fe.Location != validation.LocationBody {
			t.Fatalf("expected body location, got %q", fe.Location)
		}
	}
	if called {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestUserHandler_Create_EmailTaken(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	c, _ := newContext(http.MethodPost, "/api/users", `{"username":"alice","email":"a@example.com","password":"secret1"}`)
	err := validation.Validate(validation.Body[createUserRequest]())(h.Create)(c)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserHandler_List_Options(t *testing.T) {
	var got ports.ListOptions
	h := NewUserHandler(&stubUserService{
		listFn: func(_ context.Context, opts ports.ListOptions) ([]*domain.User, error) {
			got = opts
			return []*domain.User{{ID: 1, Username: "alice", PasswordHash: "hash"}}, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/api/users?limit=500&sort=username&order=DESC", "")
	if err := validation.Validate(validation.Query[userListQuery]())(h.List)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Limit != ports.MaxListLimit || got.Sort != "username" || got.Order != ports.SortDesc {
		t.Fatalf("unexpected options: %+v", got)
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_List_DefaultOptions(t *testing.T) {
	var got ports.ListOptions
	h := NewUserHandler(&stubUserService{
		listFn: func(_ context.Context, opts ports.ListOptions) ([]*domain.User, error) {
			got = opts
			return []*domain.User{{ID: 1}}, nil
		},
	})

	c, _ := newContext(http.MethodGet, "/api/users", "")
	if err := validation.Validate(validation.Query[userListQuery]())(h.List)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ports.ListOptions{Limit: ports.DefaultListLimit, Sort: ports.DefaultSortField, Order: ports.SortAsc}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUserHandler_List_InvalidQuery(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newContext(http.MethodGet, "/api/users?limit=ten&sort=password&order=up", "")
	err := validation.Validate(validation.Query[userListQuery]())(h.List)(c)

	errs := validationErrors(err)
	for _, f := range []string{"limit", "sort", "order"} {
		if !errs.Has(f) {
			t.Fatalf("expected error for %s, got %v", f, err)
		}
	}
	if errs[0].Location != validation.LocationQuery {
		t.Fatalf("expected query location, got %q", errs[0].Location)
	}
}

func TestUserHandler_List_Empty(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		listFn: func(context.Context, ports.ListOptions) ([]*domain.User, error) {
			return nil, domain.ErrNoUsers
		},
	})

	c, _ := newContext(http.MethodGet, "/api/users", "")
	err := validation.Validate(validation.Query[userListQuery]())(h.List)(c)
	if !errors.Is(err, domain.ErrNoUsers) {
		t.Fatalf("expected ErrNoUsers, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(_ context.Context, id int64) (*domain.User, error) {
			if id != 3 {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: 3, Username: "carol"}, nil
		},
	})
	mw := validation.Validate(validation.Params[userIDParams]())

	c, rec := newContext(http.MethodGet, "/api/users/3", "", "id", "3")
	if err := mw(h.Get)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"username":"carol"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	c, _ = newContext(http.MethodGet, "/api/users/abc", "", "id", "abc")
	errs := validationErrors(mw(h.Get)(c))
	if !errs.Has("id") || errs[0].Location != validation.LocationParams {
		t.Fatalf("expected params error for id, got %v", errs)
	}
	if errs[0].Message != "User ID must be a number" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}

	c, _ = newContext(http.MethodGet, "/api/users/99999999999999999999", "", "id", "99999999999999999999")
	if err := mw(h.Get)(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for overflowing id, got %v", err)
	}
}

func TestUserHandler_Update_PasswordOptional(t *testing.T) {
	var got ports.UpdateUserInput
	h := NewUserHandler(&stubUserService{
		updateFn: func(_ context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: in.ID}, nil
		},
	})
	mw := validation.Validate(validation.Params[userIDParams](), validation.Body[updateUserRequest]())

	c, rec := newContext(http.MethodPut, "/api/users/4", `{"username":"dave","email":"dave@example.com"}`, "id", "4")
	if err := mw(h.Update)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "User updated!") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	if got.ID != 4 || got.Password != nil {
		t.Fatalf("unexpected input: %+v", got)
	}

	c, _ = newContext(http.MethodPut, "/api/users/4", `{"username":"dave","email":"dave@example.com","password":"newpass"}`, "id", "4")
	if err := mw(h.Update)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Password == nil || *got.Password != "newpass" {
		t.Fatalf("expected password to be forwarded, got %+v", got.Password)
	}

	c, _ = newContext(http.MethodPut, "/api/users/4", `{"username":"dave","email":"dave@example.com","password":""}`, "id", "4")
	if errs := validationErrors(mw(h.Update)(c)); !errs.Has("password") {
		t.Fatalf("expected password error for empty password, got %v", errs)
	}
}

func TestUserHandler_Update_CombinesSources(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	mw := validation.Validate(validation.Params[userIDParams](), validation.Body[updateUserRequest]())

	c, _ := newContext(http.MethodPut, "/api/users/x", `{"username":"d"}`, "id", "x")
	errs := validationErrors(mw(h.Update)(c))

	if !errs.Has("id") || !errs.Has("username") || !errs.Has("email") {
		t.Fatalf("expected params and body errors together, got %v", errs)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	var deleted int64
	h := NewUserHandler(&stubUserService{
		deleteFn: func(_ context.Context, id int64) (int64, error) {
			deleted = id
			return 2, nil
		},
	})

	c, rec := newContext(http.MethodDelete, "/api/users/5", "", "id", "5")
	if err := validation.Validate(validation.Params[userIDParams]())(h.Delete)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected user 5 deleted, got %d", deleted)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "User deleted!") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}
