package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// Dependencies holds everything the router wires into handlers.
type Dependencies struct {
	Users  ports.UserService
	Posts  ports.PostService
	Auth   ports.AuthService
	Tokens ports.TokenVerifier

	// Idempotency is optional; nil disables idempotent replays.
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration

	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger

	Logger zerolog.Logger
}

// Options tunes the global middleware stack.
type Options struct {
	RequestTimeout   time.Duration
	BodyLimit        string
	CORSAllowOrigins []string

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	if opts.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(opts.RequestTimeout))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "blog",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	postHandler := handler.NewPostHandler(deps.Posts)
	healthHandler := handler.NewHealthHandler(deps.Health)

	requireAuth := middleware.Auth(deps.Tokens)
	idempotent := middleware.Idempotency(deps.Idempotency, deps.IdempotencyTTL)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API routes ---
	apiGroup := e.Group("/api")
	authHandler.RegisterRoutes(apiGroup.Group("/auth"), idempotent)
	userHandler.RegisterRoutes(apiGroup.Group("/users"), requireAuth, idempotent)
	postHandler.RegisterRoutes(apiGroup, idempotent)

	return e
}
