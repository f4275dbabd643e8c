package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Replay key"
// @Param        body             body      createUserRequest  true   "User registration details"
// @Success      201              {object}  userCreatedResponse
// @Failure      400              {object}  validationErrorResponse
// @Failure      500              {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req := validation.BodyOf[createUserRequest](c)

	user, err := h.authService.Register(c.Request().Context(), toCreateUserInput(req))
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, userCreatedResponse{ID: user.ID, Message: "User created!"})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req := validation.BodyOf[loginRequest](c)

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, idempotent echo.MiddlewareFunc) {
	g.POST("/register", h.Register, validation.Validate(validation.Body[createUserRequest]()), idempotent)
	g.POST("/login", h.Login, validation.Validate(validation.Body[loginRequest]()))
}
