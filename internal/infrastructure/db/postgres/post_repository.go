package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const deletePost = `DELETE FROM posts WHERE id = $1`

type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row scanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	b := psql.Select(postColumns...).From("posts")
	if filter.AuthorID != nil {
		b = b.Where(sq.Eq{"author_id": *filter.AuthorID})
	}
	query, args, err := b.OrderBy(orderBy(postSortColumns, filter.ListOptions)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select(postColumns...).From("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find post query: %w", err)
	}

	p, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Insert("posts").
		Columns("id", "title", "content", "published", "author_id").
		Values(post.ID, post.Title, post.Content, post.Published, post.AuthorID).
		Suffix("RETURNING id, title, content, published, author_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert post query: %w", err)
	}

	created, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Update("posts").
		Set("title", changes.Title).
		Set("content", changes.Content).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, title, content, published, author_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update post query: %w", err)
	}

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
