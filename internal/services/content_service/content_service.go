package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/lib/slug"
	"taxblog/internal/llm"
	"taxblog/internal/metrics"
	"taxblog/internal/repository"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto"
)

var ErrInvalidScheduleTime = errors.New("scheduleFor must be a valid RFC3339 timestamp")

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --all
type ContentGenerator interface {
	GenerateBlogContent(ctx context.Context, opts llm.GenerateOptions) (*llm.GeneratedContent, error)
}

// ContentService orchestrates generate -> optionally persist. Each branch
// either fully commits or leaves nothing behind.
type ContentService struct {
	log       *slog.Logger
	generator ContentGenerator
	posts     repository.PostRepository
	scheduled repository.ScheduledPostRepository
	seo       repository.SeoGuidelineRepository
	now       func() time.Time
}

func NewContentService(
	log *slog.Logger,
	generator ContentGenerator,
	posts repository.PostRepository,
	scheduled repository.ScheduledPostRepository,
	seo repository.SeoGuidelineRepository,
) *ContentService {
	return &ContentService{
		log:       log,
		generator: generator,
		posts:     posts,
		scheduled: scheduled,
		seo:       seo,
		now:       time.Now,
	}
}

func (s *ContentService) Generate(ctx context.Context, req dto.GenerateContentRequest) (*dto.GenerateContentResult, error) {
	const op = "content_service.Generate"
	log := s.log.With(
		slog.String("op", op),
		slog.String("topic", req.Topic),
	)

	category := req.Category
	if category == "" {
		category = "general accounting"
	}

	// scheduleFor is validated before the (expensive) generation call
	var scheduleFor *time.Time
	if req.ScheduleFor != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduleFor)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidScheduleTime)
		}
		scheduleFor = &t
	}

	guidelineText := ""
	active, err := s.seo.GetActiveGuideline(ctx)
	switch {
	case err == nil:
		guidelineText = active.Guidelines
	case errors.Is(err, storage.ErrGuidelineNotFound):
		// no active guideline is fine
	default:
		log.Error("failed to fetch active guideline", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("generating content")

	content, err := s.generator.GenerateBlogContent(ctx, llm.GenerateOptions{
		Topic:           req.Topic,
		Category:        category,
		Tone:            req.Tone,
		TargetWordCount: req.TargetWordCount,
		SeoGuidelines:   guidelineText,
	})
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		log.Error("generation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	metrics.GenerationTokens.Add(float64(content.TotalTokens))

	log.Info("content generated", slog.Int("word_count", content.WordCount))

	now := s.now()
	payload := dto.PostPayload{
		Title:          content.Title,
		Content:        content.Content,
		Excerpt:        content.Excerpt,
		Slug:           slug.Make(content.Title, now.UnixMilli()),
		Category:       category,
		Tags:           []string{category, req.Topic},
		MainKeyword:    req.Topic,
		SeoTitle:       content.Title,
		SeoDescription: content.Excerpt,
		// authorship is optional by design: generation is not tied
		// to an authenticated user
		AuthorID:    nil,
		Published:   false,
		AiGenerated: true,
		AiPrompt: fmt.Sprintf("Topic: %s, Category: %s, Tone: %s, Target word count: %d",
			req.Topic, category, req.Tone, req.TargetWordCount),
	}

	switch {
	case scheduleFor != nil:
		id, err := s.scheduled.SaveScheduledPost(ctx, models.ScheduledPost{
			Title:          payload.Title,
			Content:        payload.Content,
			Excerpt:        payload.Excerpt,
			Slug:           payload.Slug,
			Category:       payload.Category,
			Tags:           payload.Tags,
			MainKeyword:    payload.MainKeyword,
			SeoTitle:       payload.SeoTitle,
			SeoDescription: payload.SeoDescription,
			AuthorID:       payload.AuthorID,
			ScheduledFor:   *scheduleFor,
			AiGenerated:    true,
			AiPrompt:       payload.AiPrompt,
		})
		if err != nil {
			log.Error("failed to schedule post", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("content scheduled", slog.Time("scheduled_for", *scheduleFor))

		return &dto.GenerateContentResult{
			Success:      true,
			Type:         dto.GenerateTypeScheduled,
			ID:           &id,
			Content:      content,
			ScheduledFor: scheduleFor,
			Message:      fmt.Sprintf("Content is scheduled for automatic publication at %s.", scheduleFor.Format(time.RFC3339)),
		}, nil

	case req.SaveAsDraft:
		id, err := s.posts.SavePost(ctx, models.Post{
			Title:          payload.Title,
			Content:        payload.Content,
			Excerpt:        payload.Excerpt,
			Slug:           payload.Slug,
			Category:       payload.Category,
			Tags:           payload.Tags,
			MainKeyword:    payload.MainKeyword,
			SeoTitle:       payload.SeoTitle,
			SeoDescription: payload.SeoDescription,
			AuthorID:       payload.AuthorID,
			Published:      false,
			AiGenerated:    true,
		})
		if err != nil {
			log.Error("failed to save draft", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("content saved as draft", slog.String("post_id", id.String()))

		return &dto.GenerateContentResult{
			Success: true,
			Type:    dto.GenerateTypeDraft,
			ID:      &id,
			Content: content,
			Message: "Content saved as a draft. Review and publish it from the admin panel.",
		}, nil

	default:
		// preview mode: nothing persisted
		return &dto.GenerateContentResult{
			Success:  true,
			Type:     dto.GenerateTypePreview,
			Content:  content,
			PostData: &payload,
			Message:  "Content generated successfully.",
		}, nil
	}
}
