package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// UserRepository is the persistence gateway for users.
type UserRepository interface {
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and returns it with server-assigned fields.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update applies changes to the row identified by id.
	Update(ctx context.Context, id int64, changes domain.UserChanges) (*domain.User, error)
	// Delete removes the user and every post it authored as one unit of work.
	// It returns the number of posts removed alongside the user.
	Delete(ctx context.Context, id int64) (int64, error)
}
