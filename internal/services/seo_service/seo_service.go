package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/repository"
	"taxblog/internal/storage"
	redisstorage "taxblog/internal/storage/redis"
	"taxblog/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	activeGuidelineKey = "seo:active_guideline"
	activeGuidelineTTL = 5 * time.Minute
)

type SeoService struct {
	log   *slog.Logger
	repo  repository.SeoGuidelineRepository
	cache *redisstorage.Client
}

// NewSeoService builds the guideline service. cache may be nil, in which
// case every active-guideline read goes to the database.
func NewSeoService(log *slog.Logger, repo repository.SeoGuidelineRepository, cache *redisstorage.Client) *SeoService {
	return &SeoService{
		log:   log,
		repo:  repo,
		cache: cache,
	}
}

func (s *SeoService) ListGuidelines(ctx context.Context) ([]models.SeoGuideline, error) {
	return s.repo.GetAllGuidelines(ctx)
}

// GetActiveGuideline returns the active guideline or nil when none is
// active.
func (s *SeoService) GetActiveGuideline(ctx context.Context) (*models.SeoGuideline, error) {
	const op = "seo_service.GetActiveGuideline"

	if g := s.cachedActive(ctx); g != nil {
		return g, nil
	}

	g, err := s.repo.GetActiveGuideline(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrGuidelineNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.storeActive(ctx, g)

	return g, nil
}

func (s *SeoService) CreateGuideline(ctx context.Context, req dto.CreateGuidelineRequest) (*models.SeoGuideline, error) {
	const op = "seo_service.CreateGuideline"
	log := s.log.With(slog.String("op", op))

	g := models.SeoGuideline{
		Name:        req.Name,
		Description: req.Description,
		Guidelines:  req.Guidelines,
		Version:     req.Version,
		Active:      req.Active,
	}
	if g.Version == "" {
		g.Version = "1.0"
	}

	id, err := s.repo.SaveGuideline(ctx, g)
	if err != nil {
		log.Error("failed to create guideline", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateActive(ctx)

	log.Info("guideline created", slog.String("guideline_id", id.String()))
	return s.repo.GetGuidelineByID(ctx, id)
}

func (s *SeoService) UpdateGuideline(ctx context.Context, id uuid.UUID, req dto.UpdateGuidelineRequest) (*models.SeoGuideline, error) {
	const op = "seo_service.UpdateGuideline"

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Guidelines != nil {
		updates["guidelines"] = *req.Guidelines
	}
	if req.Version != nil {
		updates["version"] = *req.Version
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateGuidelineFields(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.invalidateActive(ctx)
	}

	return s.repo.GetGuidelineByID(ctx, id)
}

// ActivateGuideline makes id the single active guideline. An unknown id
// fails without touching any active flag.
func (s *SeoService) ActivateGuideline(ctx context.Context, id uuid.UUID) error {
	const op = "seo_service.ActivateGuideline"
	log := s.log.With(
		slog.String("op", op),
		slog.String("guideline_id", id.String()),
	)

	if err := s.repo.SetActiveGuideline(ctx, id); err != nil {
		log.Warn("activation failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateActive(ctx)

	log.Info("guideline activated")
	return nil
}

func (s *SeoService) cachedActive(ctx context.Context) *models.SeoGuideline {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, activeGuidelineKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("guideline cache read failed", sl.Err(err))
		}
		return nil
	}

	var g models.SeoGuideline
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil
	}

	return &g
}

func (s *SeoService) storeActive(ctx context.Context, g *models.SeoGuideline) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(g)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, activeGuidelineKey, raw, activeGuidelineTTL).Err(); err != nil {
		s.log.Warn("guideline cache write failed", sl.Err(err))
	}
}

func (s *SeoService) invalidateActive(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, activeGuidelineKey).Err(); err != nil {
		s.log.Warn("guideline cache invalidation failed", sl.Err(err))
	}
}
