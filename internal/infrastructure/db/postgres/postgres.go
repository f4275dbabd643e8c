package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

const defaultQueryTimeout = 5 * time.Second

// Options configures the connection pool.
type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	QueryTimeout time.Duration
}

// DB wraps the pgx-backed *sql.DB shared by the repositories.
type DB struct {
	*sql.DB
	queryTimeout time.Duration
}

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Connect opens the pool and pings the server.
func Connect(ctx context.Context, opts Options, log zerolog.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(opts.MaxIdleConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	log.Info().Int("max_open_conns", opts.MaxOpenConns).Msg("connected to postgres")
	return New(conn, opts.QueryTimeout), nil
}

// New wraps an existing pool. Used by tests with sqlmock.
func New(conn *sql.DB, queryTimeout time.Duration) *DB {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &DB{DB: conn, queryTimeout: queryTimeout}
}

// Ping satisfies the readiness check.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}
