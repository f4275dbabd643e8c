package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/inkwell/blog-api/docs"
	"github.com/inkwell/blog-api/internal/api"
	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/core/ports"
	"github.com/inkwell/blog-api/internal/core/service"
	"github.com/inkwell/blog-api/internal/infrastructure/auth"
	"github.com/inkwell/blog-api/internal/infrastructure/config"
	"github.com/inkwell/blog-api/internal/infrastructure/db/memory"
	"github.com/inkwell/blog-api/internal/infrastructure/db/mongo"
	"github.com/inkwell/blog-api/internal/infrastructure/db/postgres"
	"github.com/inkwell/blog-api/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-api/migrations"
	"github.com/inkwell/blog-api/pkg/logger"
)

// @title        Blog API
// @version      1.0
// @description  Users and posts with JWT protected user management.
// @BasePath     /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blog-api: %v\n", err)
		os.Exit(1)
	}
}

// storage is the repository pair of the selected driver plus its teardown.
type storage struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	pinger handler.Pinger
	close  func(context.Context) error
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "blog-api",
	})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	health := map[string]handler.Pinger{cfg.Store.Driver: store.pinger}

	deps := api.Dependencies{
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		Health:         health,
		Logger:         log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.Idempotency = redis.NewIdempotencyStore(rdb)
		health["redis"] = redis.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotent replays enabled")
	}

	tokens := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	userService := service.NewUserService(store.users, log)

	deps.Users = userService
	deps.Posts = service.NewPostService(store.posts, store.users, log)
	deps.Auth = service.NewAuthService(userService, store.users, tokens)
	deps.Tokens = tokens

	e := api.NewRouter(deps, api.Options{
		RequestTimeout:   cfg.RequestTimeout,
		BodyLimit:        cfg.BodyLimit,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Options{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
			QueryTimeout: cfg.Store.QueryTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := migrations.Migrate(db.DB); err != nil {
				_ = db.Close()
				return nil, err
			}
			log.Info().Msg("migrations applied")
		}
		return &storage{
			users:  postgres.NewUserRepository(db),
			posts:  postgres.NewPostRepository(db),
			pinger: db,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		store, err := mongo.Connect(ctx, mongo.Config{
			URI:          cfg.Mongo.URI,
			Database:     cfg.Mongo.Database,
			QueryTimeout: cfg.Store.QueryTimeout,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
		return &storage{
			users:  store.Users(),
			posts:  store.Posts(),
			pinger: store,
			close:  store.Close,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &storage{
			users:  store.Users(),
			posts:  store.Posts(),
			pinger: store,
			close:  func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
