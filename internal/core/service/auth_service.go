package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  *UserService
	repo   ports.UserRepository
	tokens ports.TokenIssuer
}

func NewAuthService(users *UserService, repo ports.UserRepository, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{users: users, repo: repo, tokens: tokens}
}

// Register follows the same rules as creating a user through the users API.
func (s *AuthService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.users.CreateUser(ctx, input)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
