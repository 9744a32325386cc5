package services

import (
	"context"
	"fmt"
	"log/slog"

	"taxblog/internal/domain/models"
	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/repository"
	"taxblog/internal/transport/http/dto"

	"github.com/google/uuid"
)

// TemplateService manages reusable prompt templates and bulk generation
// job records. Bulk jobs are persisted intents only; nothing in this
// repository executes them.
type TemplateService struct {
	log       *slog.Logger
	templates repository.TemplateRepository
	jobs      repository.BulkJobRepository
}

func NewTemplateService(log *slog.Logger, templates repository.TemplateRepository, jobs repository.BulkJobRepository) *TemplateService {
	return &TemplateService{
		log:       log,
		templates: templates,
		jobs:      jobs,
	}
}

func (s *TemplateService) ListTemplates(ctx context.Context, activeOnly bool) ([]models.AiContentTemplate, error) {
	if activeOnly {
		return s.templates.GetActiveTemplates(ctx)
	}
	return s.templates.GetAllTemplates(ctx)
}

func (s *TemplateService) GetTemplate(ctx context.Context, id uuid.UUID) (*models.AiContentTemplate, error) {
	return s.templates.GetTemplateByID(ctx, id)
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*models.AiContentTemplate, error) {
	const op = "template_service.CreateTemplate"
	log := s.log.With(slog.String("op", op))

	id, err := s.templates.SaveTemplate(ctx, models.AiContentTemplate{
		Name:            req.Name,
		ContentType:     req.ContentType,
		TargetAudience:  req.TargetAudience,
		PromptTemplate:  req.PromptTemplate,
		ExampleKeywords: req.ExampleKeywords,
		Active:          req.Active,
	})
	if err != nil {
		log.Error("failed to create template", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("template created", slog.String("template_id", id.String()))
	return s.templates.GetTemplateByID(ctx, id)
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, req dto.UpdateTemplateRequest) (*models.AiContentTemplate, error) {
	const op = "template_service.UpdateTemplate"

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContentType != nil {
		updates["content_type"] = *req.ContentType
	}
	if req.TargetAudience != nil {
		updates["target_audience"] = *req.TargetAudience
	}
	if req.PromptTemplate != nil {
		updates["prompt_template"] = *req.PromptTemplate
	}
	if req.ExampleKeywords != nil {
		updates["example_keywords"] = req.ExampleKeywords
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.templates.UpdateTemplateFields(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.templates.GetTemplateByID(ctx, id)
}

func (s *TemplateService) ListJobs(ctx context.Context) ([]models.BulkContentJob, error) {
	return s.jobs.GetAllJobs(ctx)
}

func (s *TemplateService) GetJob(ctx context.Context, id uuid.UUID) (*models.BulkContentJob, error) {
	return s.jobs.GetJobByID(ctx, id)
}

func (s *TemplateService) CreateJob(ctx context.Context, req dto.CreateBulkJobRequest) (*models.BulkContentJob, error) {
	const op = "template_service.CreateJob"
	log := s.log.With(slog.String("op", op))

	id, err := s.jobs.SaveJob(ctx, models.BulkContentJob{
		Name:        req.Name,
		TemplateID:  req.TemplateID,
		GuidelineID: req.GuidelineID,
		Topics:      req.Topics,
		Status:      models.JobStatusPending,
		TotalItems:  len(req.Topics),
	})
	if err != nil {
		log.Error("failed to create bulk job", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bulk job created",
		slog.String("job_id", id.String()),
		slog.Int("total_items", len(req.Topics)),
	)
	return s.jobs.GetJobByID(ctx, id)
}

func (s *TemplateService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	const op = "template_service.DeleteJob"

	if err := s.jobs.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
