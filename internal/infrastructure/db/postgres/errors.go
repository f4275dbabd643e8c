package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell/blog-api/internal/core/domain"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateWriteError maps constraint violations onto domain errors.
// It returns nil when err carries no known constraint code.
func translateWriteError(err error) error {
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return domain.ErrEmailTaken
	case pgerrcode.ForeignKeyViolation:
		return domain.ErrUserNotFound
	}
	return nil
}
