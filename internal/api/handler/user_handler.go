package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations. All of its routes
// sit behind the Auth middleware.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns users ordered and limited by the query string.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int     false  "Max rows (1-100)"  default(10)
// @Param        sort   query     string  false  "Sort field"        Enums(id, username, email, createdAt)
// @Param        order  query     string  false  "Sort order"        Enums(asc, desc)
// @Success      200    {array}   domain.User
// @Failure      400    {object}  validationErrorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  messageResponse
// @Failure      500    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	q := validation.QueryOf[userListQuery](c)

	users, err := h.service.ListUsers(c.Request().Context(), q.Options)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  validationErrorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUserID(validation.ParamsOf[userIDParams](c).ID)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create registers a user on behalf of an authenticated caller.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Replay key"
// @Param        body             body      createUserRequest  true   "User"
// @Success      201              {object}  userCreatedResponse
// @Failure      400              {object}  validationErrorResponse
// @Failure      401              {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	req := validation.BodyOf[createUserRequest](c)

	user, err := h.service.CreateUser(c.Request().Context(), toCreateUserInput(req))
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, userCreatedResponse{ID: user.ID, Message: "User created!"})
}

// Update replaces username and email, and the password when one is given.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User ID"
// @Param        body  body      updateUserRequest  true  "User"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUserID(validation.ParamsOf[userIDParams](c).ID)
	if err != nil {
		return err
	}

	req := validation.BodyOf[updateUserRequest](c)
	if _, err := h.service.UpdateUser(c.Request().Context(), toUpdateUserInput(id, req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User updated!"})
}

// Delete removes the user and all of its posts.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUserID(validation.ParamsOf[userIDParams](c).ID)
	if err != nil {
		return err
	}

	removed, err := h.service.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	metrics.PostsDeletedTotal.WithLabelValues("cascade").Add(float64(removed))
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted!"})
}

// RegisterRoutes mounts the user routes on g. Validation runs before auth so
// malformed requests are rejected without a token check.
func (h *UserHandler) RegisterRoutes(g *echo.Group, auth, idempotent echo.MiddlewareFunc) {
	g.GET("", h.List, validation.Validate(validation.Query[userListQuery]()), auth)
	g.GET("/:id", h.Get, validation.Validate(validation.Params[userIDParams]()), auth)
	g.POST("", h.Create, validation.Validate(validation.Body[createUserRequest]()), auth, idempotent)
	g.PUT("/:id", h.Update, validation.Validate(validation.Params[userIDParams](), validation.Body[updateUserRequest]()), auth)
	g.DELETE("/:id", h.Delete, validation.Validate(validation.Params[userIDParams]()), auth)
}
