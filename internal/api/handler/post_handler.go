package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/api/validation"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List returns posts across all authors.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        limit  query     int     false  "Max rows (1-100)"  default(10)
// @Param        sort   query     string  false  "Sort field"        Enums(id, title, published, authorId, createdAt)
// @Param        order  query     string  false  "Sort order"        Enums(asc, desc)
// @Success      200    {array}   domain.Post
// @Failure      400    {object}  validationErrorResponse
// @Failure      404    {object}  messageResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	q := validation.QueryOf[postListQuery](c)

	posts, err := h.service.ListPosts(c.Request().Context(), q.Options)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns a single post.
//
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  validationErrorResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), validation.ParamsOf[postIDParams](c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// ListByUser returns the posts written by one author.
//
// @Summary      List posts of a user
// @Tags         posts
// @Produce      json
// @Param        userId  path      int     true   "User ID"
// @Param        limit   query     int     false  "Max rows (1-100)"  default(10)
// @Param        sort    query     string  false  "Sort field"        Enums(id, title, published, authorId, createdAt)
// @Param        order   query     string  false  "Sort order"        Enums(asc, desc)
// @Success      200     {array}   domain.Post
// @Failure      400     {object}  validationErrorResponse
// @Failure      404     {object}  messageResponse
// @Router       /users/{userId}/posts [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	authorID, err := parseUserID(validation.ParamsOf[authorIDParams](c).UserID)
	if err != nil {
		return err
	}

	q := validation.QueryOf[postListQuery](c)
	posts, err := h.service.ListUserPosts(c.Request().Context(), authorID, q.Options)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create adds a post for the author in the path.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        userId           path      int                true   "Author ID"
// @Param        Idempotency-Key  header    string             false  "Replay key"
// @Param        body             body      createPostRequest  true   "Post"
// @Success      201              {object}  postCreatedResponse
// @Failure      400              {object}  validationErrorResponse
// @Failure      404              {object}  messageResponse
// @Router       /users/{userId}/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	authorID, err := parseUserID(validation.ParamsOf[authorIDParams](c).UserID)
	if err != nil {
		return err
	}

	req := validation.BodyOf[createPostRequest](c)
	post, err := h.service.CreatePost(c.Request().Context(), toCreatePostInput(authorID, req))
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, postCreatedResponse{ID: post.ID, Message: "Post created!"})
}

// Update replaces title and content.
//
// @Summary      Update post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Post"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  messageResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id := validation.ParamsOf[postIDParams](c).ID
	req := validation.BodyOf[updatePostRequest](c)

	if _, err := h.service.UpdatePost(c.Request().Context(), toUpdatePostInput(id, req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Post updated!"})
}

// Delete removes a post.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  validationErrorResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), validation.ParamsOf[postIDParams](c).ID); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.WithLabelValues("direct").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted!"})
}

// RegisterRoutes mounts the post routes on the /api group g.
func (h *PostHandler) RegisterRoutes(g *echo.Group, idempotent echo.MiddlewareFunc) {
	g.GET("/posts", h.List, validation.Validate(validation.Query[postListQuery]()))
	g.GET("/posts/:id", h.Get, validation.Validate(validation.Params[postIDParams]()))
	g.PUT("/posts/:id", h.Update, validation.Validate(validation.Params[postIDParams](), validation.Body[updatePostRequest]()))
	g.DELETE("/posts/:id", h.Delete, validation.Validate(validation.Params[postIDParams]()))

	g.GET("/users/:userId/posts", h.ListByUser, validation.Validate(validation.Params[authorIDParams](), validation.Query[postListQuery]()))
	g.POST("/users/:userId/posts", h.Create, validation.Validate(validation.Params[authorIDParams](), validation.Body[createPostRequest]()), idempotent)
}
