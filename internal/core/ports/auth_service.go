package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenIssuer signs access tokens for an authenticated user.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier resolves a bearer token into the caller identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
