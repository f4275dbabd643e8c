package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	users, err := s.repo.List(ctx, opts.WithDefaults())
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx).Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

// UpdateUser replaces username and email. The password hash is only rewritten
// when a new password is supplied.
func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	changes := domain.UserChanges{
		Username: input.Username,
		Email:    input.Email,
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, input.ID, changes)
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx).Int64("user_id", user.ID).Bool("password_changed", changes.PasswordHash != nil).Msg("user updated")
	return user, nil
}

// DeleteUser removes the user together with every post it authored.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logEvent(ctx).Int64("user_id", id).Int64("posts_removed", removed).Msg("user deleted")
	return removed, nil
}

func (s *UserService) logEvent(ctx context.Context) *zerolog.Event {
	return withActor(ctx, s.logger.Info())
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// withActor tags ev with the authenticated caller, when there is one.
func withActor(ctx context.Context, ev *zerolog.Event) *zerolog.Event {
	if id, ok := domain.IdentityFromContext(ctx); ok {
		ev = ev.Int64("actor_id", id.UserID)
	}
	return ev
}
