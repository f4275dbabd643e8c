package handler

import (
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// --- Requests ---

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3" sanitize:"trim,escape"`
	Email    string `json:"email"    validate:"required,email" sanitize:"trim,lower"`
	Password string `json:"password" validate:"required,min=6" sanitize:"trim"`
}

// updateUserRequest replaces the profile. Password is optional: omitted keeps
// the current hash, present is validated and re-hashed.
type updateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3"   sanitize:"trim,escape"`
	Email    string  `json:"email"    validate:"required,email"   sanitize:"trim,lower"`
	Password *string `json:"password" validate:"omitnil,min=6"    sanitize:"trim"`
}

type createPostRequest struct {
	Title     string `json:"title"   validate:"required,min=5"  sanitize:"trim,escape"`
	Content   string `json:"content" validate:"required,min=10" sanitize:"trim,escape"`
	Published *bool  `json:"published"`
}

type updatePostRequest struct {
	Title   string `json:"title"   validate:"required,min=5"  sanitize:"trim,escape"`
	Content string `json:"content" validate:"required,min=10" sanitize:"trim,escape"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email" sanitize:"trim,lower"`
	Password string `json:"password" validate:"required"       sanitize:"trim"`
}

// --- Path parameters ---

type userIDParams struct {
	ID string `param:"id" label:"User ID" validate:"required,number"`
}

type authorIDParams struct {
	UserID string `param:"userId" label:"User ID" validate:"required,number"`
}

type postIDParams struct {
	ID string `param:"id" label:"Post ID" validate:"required,uuid"`
}

// --- Query strings ---

// List queries keep the raw strings for validation; Options holds the coerced
// values once the pipeline has normalized them.
type userListQuery struct {
	Limit string `query:"limit" validate:"omitempty,number"                                 sanitize:"trim"`
	Sort  string `query:"sort"  validate:"omitempty,alpha,oneof=id username email createdAt" sanitize:"trim"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"                         sanitize:"trim,lower"`

	Options ports.ListOptions `query:"-" json:"-"`
}

func (q *userListQuery) Normalize() { q.Options = listOptions(q.Limit, q.Sort, q.Order) }

type postListQuery struct {
	Limit string `query:"limit" validate:"omitempty,number"                                           sanitize:"trim"`
	Sort  string `query:"sort"  validate:"omitempty,alpha,oneof=id title published authorId createdAt" sanitize:"trim"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"                                   sanitize:"trim,lower"`

	Options ports.ListOptions `query:"-" json:"-"`
}

func (q *postListQuery) Normalize() { q.Options = listOptions(q.Limit, q.Sort, q.Order) }

// --- Responses ---

type userCreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type postCreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the envelope for auth, conflict and internal errors.
type errorResponse struct {
	Error string `json:"error"`
}

type validationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
