package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	deletePostsByAuthor = `DELETE FROM posts WHERE author_id = $1`
	deleteUser          = `DELETE FROM users WHERE id = $1`
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select(userColumns...).
		From("users").
		OrderBy(orderBy(userSortColumns, opts)).
		Limit(uint64(opts.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, opts.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Insert("users").
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING id, username, email, password_hash, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user query: %w", err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, changes domain.UserChanges) (*domain.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	b := psql.Update("users").
		Set("username", changes.Username).
		Set("email", changes.Email)
	if changes.PasswordHash != nil {
		b = b.Set("password_hash", *changes.PasswordHash)
	}
	query, args, err := b.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, username, email, password_hash, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user query: %w", err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// Delete removes the user's posts and then the user inside one transaction.
// Nothing is committed when the user does not exist.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	log := zerolog.Ctx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete user tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deletePostsByAuthor, id)
	if err != nil {
		return 0, fmt.Errorf("delete user posts: %w", err)
	}
	postsRemoved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete user posts: %w", err)
	}

	res, err = tx.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return 0, domain.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete user tx: %w", err)
	}

	log.Debug().Int64("user_id", id).Int64("posts_removed", postsRemoved).Msg("user rows deleted")
	return postsRemoved, nil
}
