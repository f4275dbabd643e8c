package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CreateUserInput is the DTO passed from the transport layer to UserService.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries a full profile update. A nil Password keeps the
// stored hash; a non-nil one is always re-hashed.
type UpdateUserInput struct {
	ID       int64
	Username string
	Email    string
	Password *string
}

// UserService defines the user use cases.
type UserService interface {
	ListUsers(ctx context.Context, opts ListOptions) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	// DeleteUser returns the number of posts removed together with the user.
	DeleteUser(ctx context.Context, id int64) (int64, error)
}
