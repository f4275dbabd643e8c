package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

func (s *PostService) ListPosts(ctx context.Context, opts ports.ListOptions) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx, ports.PostFilter{ListOptions: opts.WithDefaults()})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrNoPosts
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) ListUserPosts(ctx context.Context, authorID int64, opts ports.ListOptions) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx, ports.ByAuthor(authorID, opts.WithDefaults()))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrNoUserPosts
	}
	return posts, nil
}

// CreatePost verifies the author exists before inserting. The store's foreign
// key still guards against the author being removed in between.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if _, err := s.users.FindByID(ctx, input.AuthorID); err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  input.AuthorID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Int64("author_id", input.AuthorID).Msg("author removed before post insert")
		}
		return nil, err
	}

	withActor(ctx, s.logger.Info()).Str("post_id", post.ID).Int64("author_id", post.AuthorID).Msg("post created")
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.posts.Update(ctx, input.ID, domain.PostChanges{Title: input.Title, Content: input.Content})
	if err != nil {
		return nil, err
	}

	withActor(ctx, s.logger.Info()).Str("post_id", post.ID).Msg("post updated")
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	withActor(ctx, s.logger.Info()).Str("post_id", id).Msg("post deleted")
	return nil
}
