package http

import (
	"errors"
	"log/slog"
	"net/http"

	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListScheduledPosts godoc
// @Summary List posts waiting for scheduled publication
// @Tags scheduled
// @Produce json
// @Success 200 {object} response.Response{data=[]models.ScheduledPost}
// @Security ApiKeyAuth
// @Router /api/admin/scheduled [get]
func (r *Routers) ListScheduledPosts(c echo.Context) error {
	const op = "http.routers.ListScheduledPosts"

	scheduled, err := r.BlogService.ListScheduledPosts(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list scheduled posts", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch scheduled posts",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(scheduled))
}

// DeleteScheduledPost godoc
// @Summary Cancel a scheduled publication
// @Tags scheduled
// @Produce json
// @Param scheduled_id path string true "Scheduled post UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Scheduled post not found"
// @Security ApiKeyAuth
// @Router /api/admin/scheduled/{scheduled_id} [delete]
func (r *Routers) DeleteScheduledPost(c echo.Context) error {
	const op = "http.routers.DeleteScheduledPost"

	scheduledID, err := uuid.Parse(c.Param("scheduled_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid scheduled post ID format",
		})
	}

	if err := r.BlogService.DeleteScheduledPost(c.Request().Context(), scheduledID); err != nil {
		if errors.Is(err, storage.ErrScheduledNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "scheduled post not found",
			})
		}

		r.log.Error("failed to delete scheduled post", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to delete scheduled post",
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "scheduled post deleted",
	})
}

// PublishScheduledPost godoc
// @Summary Publish a scheduled post immediately
// @Description Atomically moves the row to the published posts. Publishing
// @Description the same id twice fails with 404 for the second caller.
// @Tags scheduled
// @Produce json
// @Param scheduled_id path string true "Scheduled post UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 404 {object} response.ErrorResponse "Scheduled post not found"
// @Security ApiKeyAuth
// @Router /api/admin/scheduled/{scheduled_id}/publish [post]
func (r *Routers) PublishScheduledPost(c echo.Context) error {
	const op = "http.routers.PublishScheduledPost"

	log := r.log.With(
		slog.String("op", op),
	)

	scheduledID, err := uuid.Parse(c.Param("scheduled_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid scheduled post ID format",
		})
	}

	post, err := r.BlogService.PublishScheduledPost(c.Request().Context(), scheduledID)
	if err != nil {
		if errors.Is(err, storage.ErrScheduledNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "scheduled post not found",
			})
		}

		log.Error("failed to publish scheduled post", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to publish scheduled post",
		})
	}

	log.Info("scheduled post published", slog.String("post_id", post.ID.String()))

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// PublishDuePosts godoc
// @Summary Publish every scheduled post whose time has come
// @Description Intended to be hit by an external cron.
// @Tags scheduled
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Post}
// @Security ApiKeyAuth
// @Router /api/admin/scheduled/publish-due [post]
func (r *Routers) PublishDuePosts(c echo.Context) error {
	const op = "http.routers.PublishDuePosts"

	log := r.log.With(
		slog.String("op", op),
	)

	published, err := r.BlogService.PublishDuePosts(c.Request().Context())
	if err != nil {
		log.Error("failed to publish due posts", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to publish due posts",
		})
	}

	log.Info("due posts published", slog.Int("count", len(published)))

	return c.JSON(http.StatusOK, response.SuccessResponse(published))
}
