package http

import (
	"errors"
	"log/slog"
	"net/http"

	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/llm"
	contentservice "taxblog/internal/services/content_service"
	"taxblog/internal/transport/http/dto"
	"taxblog/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// GenerateContent godoc
// @Summary Generate a blog post with the AI provider
// @Description Generates SEO-optimized content for a topic. Depending on the
// @Description request it is returned as a preview, saved as a draft, or
// @Description scheduled for automatic publication.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.GenerateContentRequest true "Generation parameters"
// @Success 200 {object} dto.GenerateContentResult "Generated content"
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 429 {object} response.ErrorResponse "Provider rate limit"
// @Failure 500 {object} response.ErrorResponse "Generation failed"
// @Security ApiKeyAuth
// @Router /api/ai/generate [post]
func (r *Routers) GenerateContent(c echo.Context) error {
	const op = "http.routers.GenerateContent"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.GenerateContentRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	result, err := r.ContentService.Generate(c.Request().Context(), req)
	if err != nil {
		return r.generationError(c, log, err)
	}

	return c.JSON(http.StatusOK, result)
}

// generationError maps generation failures to HTTP statuses with messages
// that are safe to show in the admin panel.
func (r *Routers) generationError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, contentservice.ErrInvalidScheduleTime):
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Status: "error",
			Error:  "invalid_schedule_time",
			Details: "scheduleFor must be an RFC3339 timestamp, " +
				"for example 2026-01-15T09:00:00+09:00",
		})
	case errors.Is(err, llm.ErrInvalidAPIKey):
		log.Error("provider rejected API key")
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "generation_failed",
			Details: "The AI provider rejected the configured API key. " +
				"Check OPENAI_API_KEY.",
		})
	case errors.Is(err, llm.ErrRateLimited):
		log.Warn("provider rate limit hit")
		return c.JSON(http.StatusTooManyRequests, response.ErrorResponse{
			Status:  "error",
			Error:   "rate_limited",
			Details: "The AI provider is rate limiting requests. Try again shortly.",
		})
	case errors.Is(err, llm.ErrQuotaExceeded):
		log.Error("provider quota exhausted")
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status:  "error",
			Error:   "quota_exceeded",
			Details: "The AI provider account has no remaining quota.",
		})
	case errors.Is(err, llm.ErrMisconfigured):
		log.Error("llm client misconfigured", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status:  "error",
			Error:   "generation_failed",
			Details: "AI content generation is not configured on this server.",
		})
	default:
		log.Error("generation failed", sl.Err(err))

		resp := response.ErrorResponse{
			Status: "error",
			Error:  "generation_failed",
		}
		if r.env != "prod" {
			resp.Details = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
}

// TestConnection godoc
// @Summary Probe the AI provider connection
// @Description Sends a minimal completion request to verify credentials.
// @Description Not registered in production.
// @Tags ai
// @Produce json
// @Success 200 {object} response.Response "Provider reachable"
// @Failure 502 {object} response.ErrorResponse "Provider unreachable"
// @Router /api/ai/test [get]
func (r *Routers) TestConnection(c echo.Context) error {
	const op = "http.routers.TestConnection"

	log := r.log.With(
		slog.String("op", op),
	)

	if err := r.Prober.Ping(c.Request().Context()); err != nil {
		log.Warn("provider probe failed", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponse{
			Status:  "error",
			Error:   "provider_unreachable",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "AI provider connection OK",
	})
}
