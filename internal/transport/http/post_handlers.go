package http

import (
	"errors"
	"log/slog"
	"net/http"

	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto"
	"taxblog/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListPublishedPosts godoc
// @Summary List published posts
// @Description Public listing, newest publication first.
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Post}
// @Router /api/posts [get]
func (r *Routers) ListPublishedPosts(c echo.Context) error {
	const op = "http.routers.ListPublishedPosts"

	posts, err := r.BlogService.ListPublishedPosts(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch posts",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// ReadPost godoc
// @Summary Read a published post by slug
// @Description Returns the post and counts the view.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 404 {object} response.ErrorResponse "Post not found"
// @Router /api/posts/{slug} [get]
func (r *Routers) ReadPost(c echo.Context) error {
	const op = "http.routers.ReadPost"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	post, err := r.BlogService.ReadPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "post not found",
			})
		}

		log.Error("failed to read post", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch post",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// ListPostsByCategory godoc
// @Summary List published posts in a category
// @Tags posts
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.Response{data=[]models.Post}
// @Router /api/posts/category/{category} [get]
func (r *Routers) ListPostsByCategory(c echo.Context) error {
	const op = "http.routers.ListPostsByCategory"

	posts, err := r.BlogService.ListPostsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		r.log.Error("failed to list posts by category", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch posts",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// ListAllPosts godoc
// @Summary List every post, drafts included
// @Tags admin-posts
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Post}
// @Security ApiKeyAuth
// @Router /api/admin/posts [get]
func (r *Routers) ListAllPosts(c echo.Context) error {
	const op = "http.routers.ListAllPosts"

	posts, err := r.BlogService.ListAllPosts(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch posts",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// GetPost godoc
// @Summary Get a post by id
// @Tags admin-posts
// @Produce json
// @Param post_id path string true "Post UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 404 {object} response.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /api/admin/posts/{post_id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid post ID format",
		})
	}

	post, err := r.BlogService.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "post not found",
			})
		}

		r.log.Error("failed to get post", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch post",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// CreatePost godoc
// @Summary Create a post
// @Tags admin-posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post data"
// @Success 201 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 409 {object} response.ErrorResponse "Slug already in use"
// @Security ApiKeyAuth
// @Router /api/admin/posts [post]
func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePostRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.CreatePost(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrSlugTaken) {
			return c.JSON(http.StatusConflict, response.ErrorResponse{
				Status:  "error",
				Error:   "slug_taken",
				Details: "A post with this slug already exists",
			})
		}

		log.Error("failed to create post", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to create post",
		})
	}

	log.Info("post created", slog.String("post_id", post.ID.String()))

	return c.JSON(http.StatusCreated, response.SuccessResponse(post))
}

// UpdatePost godoc
// @Summary Update a post
// @Description Partial update; absent fields are left untouched.
// @Tags admin-posts
// @Accept json
// @Produce json
// @Param post_id path string true "Post UUID" format(uuid)
// @Param request body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 404 {object} response.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /api/admin/posts/{post_id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid post ID format",
		})
	}

	var req dto.UpdatePostRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.UpdatePost(c.Request().Context(), postID, req)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "post not found",
			})
		}

		log.Error("failed to update post", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to update post",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// DeletePost godoc
// @Summary Delete a post
// @Tags admin-posts
// @Produce json
// @Param post_id path string true "Post UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /api/admin/posts/{post_id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid post ID format",
		})
	}

	if err := r.BlogService.DeletePost(c.Request().Context(), postID); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "post not found",
			})
		}

		r.log.Error("failed to delete post", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to delete post",
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "post deleted",
	})
}
