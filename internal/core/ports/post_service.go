package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CreatePostInput is the DTO for a new post authored by AuthorID.
type CreatePostInput struct {
	AuthorID  int64
	Title     string
	Content   string
	Published bool
}

// UpdatePostInput replaces title and content of an existing post.
type UpdatePostInput struct {
	ID      string
	Title   string
	Content string
}

// PostService defines the post use cases.
type PostService interface {
	ListPosts(ctx context.Context, opts ListOptions) ([]*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListUserPosts(ctx context.Context, authorID int64, opts ListOptions) ([]*domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}
