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

// ListTemplates godoc
// @Summary List AI content templates
// @Tags templates
// @Produce json
// @Param active query boolean false "Only active templates"
// @Success 200 {object} response.Response{data=[]models.AiContentTemplate}
// @Security ApiKeyAuth
// @Router /api/admin/templates [get]
func (r *Routers) ListTemplates(c echo.Context) error {
	const op = "http.routers.ListTemplates"

	activeOnly := c.QueryParam("active") == "true"

	templates, err := r.TemplateService.ListTemplates(c.Request().Context(), activeOnly)
	if err != nil {
		r.log.Error("failed to list templates", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch templates",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(templates))
}

// GetTemplate godoc
// @Summary Get an AI content template
// @Tags templates
// @Produce json
// @Param template_id path string true "Template UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.AiContentTemplate}
// @Failure 404 {object} response.ErrorResponse "Template not found"
// @Security ApiKeyAuth
// @Router /api/admin/templates/{template_id} [get]
func (r *Routers) GetTemplate(c echo.Context) error {
	const op = "http.routers.GetTemplate"

	templateID, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid template ID format",
		})
	}

	tmpl, err := r.TemplateService.GetTemplate(c.Request().Context(), templateID)
	if err != nil {
		if errors.Is(err, storage.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "template not found",
			})
		}

		r.log.Error("failed to get template", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch template",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tmpl))
}

// CreateTemplate godoc
// @Summary Create an AI content template
// @Tags templates
// @Accept json
// @Produce json
// @Param request body dto.CreateTemplateRequest true "Template data"
// @Success 201 {object} response.Response{data=models.AiContentTemplate}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Security ApiKeyAuth
// @Router /api/admin/templates [post]
func (r *Routers) CreateTemplate(c echo.Context) error {
	const op = "http.routers.CreateTemplate"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateTemplateRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	tmpl, err := r.TemplateService.CreateTemplate(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create template", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to create template",
		})
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(tmpl))
}

// UpdateTemplate godoc
// @Summary Update an AI content template
// @Tags templates
// @Accept json
// @Produce json
// @Param template_id path string true "Template UUID" format(uuid)
// @Param request body dto.UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.AiContentTemplate}
// @Failure 404 {object} response.ErrorResponse "Template not found"
// @Security ApiKeyAuth
// @Router /api/admin/templates/{template_id} [put]
func (r *Routers) UpdateTemplate(c echo.Context) error {
	const op = "http.routers.UpdateTemplate"

	log := r.log.With(
		slog.String("op", op),
	)

	templateID, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid template ID format",
		})
	}

	var req dto.UpdateTemplateRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	tmpl, err := r.TemplateService.UpdateTemplate(c.Request().Context(), templateID, req)
	if err != nil {
		if errors.Is(err, storage.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "template not found",
			})
		}

		log.Error("failed to update template", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to update template",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tmpl))
}

// ListBulkJobs godoc
// @Summary List bulk generation job records
// @Tags bulk-jobs
// @Produce json
// @Success 200 {object} response.Response{data=[]models.BulkContentJob}
// @Security ApiKeyAuth
// @Router /api/admin/bulk-jobs [get]
func (r *Routers) ListBulkJobs(c echo.Context) error {
	const op = "http.routers.ListBulkJobs"

	jobs, err := r.TemplateService.ListJobs(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list bulk jobs", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch bulk jobs",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(jobs))
}

// GetBulkJob godoc
// @Summary Get a bulk generation job record
// @Tags bulk-jobs
// @Produce json
// @Param job_id path string true "Job UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.BulkContentJob}
// @Failure 404 {object} response.ErrorResponse "Job not found"
// @Security ApiKeyAuth
// @Router /api/admin/bulk-jobs/{job_id} [get]
func (r *Routers) GetBulkJob(c echo.Context) error {
	const op = "http.routers.GetBulkJob"

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid job ID format",
		})
	}

	job, err := r.TemplateService.GetJob(c.Request().Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "bulk job not found",
			})
		}

		r.log.Error("failed to get bulk job", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to fetch bulk job",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(job))
}

// CreateBulkJob godoc
// @Summary Record a bulk generation job
// @Description Persists the job intent only; execution happens elsewhere.
// @Tags bulk-jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateBulkJobRequest true "Job data"
// @Success 201 {object} response.Response{data=models.BulkContentJob}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Security ApiKeyAuth
// @Router /api/admin/bulk-jobs [post]
func (r *Routers) CreateBulkJob(c echo.Context) error {
	const op = "http.routers.CreateBulkJob"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateBulkJobRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	job, err := r.TemplateService.CreateJob(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create bulk job", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to create bulk job",
		})
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(job))
}

// DeleteBulkJob godoc
// @Summary Delete a bulk generation job record
// @Tags bulk-jobs
// @Produce json
// @Param job_id path string true "Job UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Job not found"
// @Security ApiKeyAuth
// @Router /api/admin/bulk-jobs/{job_id} [delete]
func (r *Routers) DeleteBulkJob(c echo.Context) error {
	const op = "http.routers.DeleteBulkJob"

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid job ID format",
		})
	}

	if err := r.TemplateService.DeleteJob(c.Request().Context(), jobID); err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: "bulk job not found",
			})
		}

		r.log.Error("failed to delete bulk job", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to delete bulk job",
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "bulk job deleted",
	})
}
