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

// ListGuidelines godoc
// @Summary List SEO guideline sets
// @Tags seo
// @Produce json
// @Success 200 {object} response.Response{data=[]models.SeoGuideline}
// @Router /api/seo/guidelines [get]
func (r *Routers) ListGuidelines(c echo.Context) error {
	const op = "http.routers.ListGuidelines"

	guidelines, err := r.SeoService.ListGuidelines(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list guidelines", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch guidelines",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(guidelines))
}

// GetActiveGuideline godoc
// @Summary Get the active SEO guideline set
// @Description Returns null data when no guideline is active.
// @Tags seo
// @Produce json
// @Success 200 {object} response.Response{data=models.SeoGuideline}
// @Router /api/seo/guidelines/active [get]
func (r *Routers) GetActiveGuideline(c echo.Context) error {
	const op = "http.routers.GetActiveGuideline"

	guideline, err := r.SeoService.GetActiveGuideline(c.Request().Context())
	if err != nil {
		r.log.Error("failed to get active guideline", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch active guideline",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(guideline))
}

// CreateGuideline godoc
// @Summary Create an SEO guideline set
// @Tags seo
// @Accept json
// @Produce json
// @Param request body dto.CreateGuidelineRequest true "Guideline data"
// @Success 201 {object} response.Response{data=models.SeoGuideline}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Security ApiKeyAuth
// @Router /api/admin/seo/guidelines [post]
func (r *Routers) CreateGuideline(c echo.Context) error {
	const op = "http.routers.CreateGuideline"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateGuidelineRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	guideline, err := r.SeoService.CreateGuideline(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create guideline", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to create guideline",
		})
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(guideline))
}

// UpdateGuideline godoc
// @Summary Update an SEO guideline set
// @Tags seo
// @Accept json
// @Produce json
// @Param guideline_id path string true "Guideline UUID" format(uuid)
// @Param request body dto.UpdateGuidelineRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.SeoGuideline}
// @Failure 404 {object} response.ErrorResponse "Guideline not found"
// @Security ApiKeyAuth
// @Router /api/admin/seo/guidelines/{guideline_id} [put]
func (r *Routers) UpdateGuideline(c echo.Context) error {
	const op = "http.routers.UpdateGuideline"

	log := r.log.With(
		slog.String("op", op),
	)

	guidelineID, err := uuid.Parse(c.Param("guideline_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid guideline ID format",
		})
	}

	var req dto.UpdateGuidelineRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	guideline, err := r.SeoService.UpdateGuideline(c.Request().Context(), guidelineID, req)
	if err != nil {
		if errors.Is(err, storage.ErrGuidelineNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "guideline not found",
			})
		}

		log.Error("failed to update guideline", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to update guideline",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(guideline))
}

// ActivateGuideline godoc
// @Summary Activate an SEO guideline set
// @Description Makes the chosen set the single active one. Activating an
// @Description unknown id leaves the current active set untouched.
// @Tags seo
// @Produce json
// @Param guideline_id path string true "Guideline UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Guideline not found"
// @Security ApiKeyAuth
// @Router /api/admin/seo/guidelines/{guideline_id}/activate [post]
func (r *Routers) ActivateGuideline(c echo.Context) error {
	const op = "http.routers.ActivateGuideline"

	guidelineID, err := uuid.Parse(c.Param("guideline_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid guideline ID format",
		})
	}

	if err := r.SeoService.ActivateGuideline(c.Request().Context(), guidelineID); err != nil {
		if errors.Is(err, storage.ErrGuidelineNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "guideline not found",
			})
		}

		r.log.Error("failed to activate guideline", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to activate guideline",
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "guideline activated",
	})
}
