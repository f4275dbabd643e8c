package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// PostFilter narrows a post listing. A nil AuthorID lists every author; a
// non-nil one always filters, even on an id no user can have.
type PostFilter struct {
	AuthorID *int64
	ListOptions
}

// ByAuthor returns a filter scoped to a single author.
func ByAuthor(authorID int64, opts ListOptions) PostFilter {
	return PostFilter{AuthorID: &authorID, ListOptions: opts}
}

// PostRepository is the persistence gateway for posts.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Create inserts the post. A dangling AuthorID yields domain.ErrUserNotFound.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
