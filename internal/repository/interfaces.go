package repository

import (
	"context"
	"time"

	"taxblog/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type PostRepository interface {
	SavePost(ctx context.Context, post models.Post) (uuid.UUID, error)
	GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPublishedPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error)
	UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error
	DeletePost(ctx context.Context, postID uuid.UUID) error
	IncrementViews(ctx context.Context, postID uuid.UUID) error
}

type ScheduledPostRepository interface {
	SaveScheduledPost(ctx context.Context, post models.ScheduledPost) (uuid.UUID, error)
	GetScheduledPostByID(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error)
	GetAllScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error)
	GetScheduledPostsDue(ctx context.Context, now time.Time) ([]models.ScheduledPost, error)
	DeleteScheduledPost(ctx context.Context, id uuid.UUID) error
	PublishScheduledPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

type SeoGuidelineRepository interface {
	SaveGuideline(ctx context.Context, g models.SeoGuideline) (uuid.UUID, error)
	GetAllGuidelines(ctx context.Context) ([]models.SeoGuideline, error)
	GetActiveGuideline(ctx context.Context) (*models.SeoGuideline, error)
	GetGuidelineByID(ctx context.Context, id uuid.UUID) (*models.SeoGuideline, error)
	UpdateGuidelineFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SetActiveGuideline(ctx context.Context, id uuid.UUID) error
}

type TemplateRepository interface {
	SaveTemplate(ctx context.Context, t models.AiContentTemplate) (uuid.UUID, error)
	GetAllTemplates(ctx context.Context) ([]models.AiContentTemplate, error)
	GetActiveTemplates(ctx context.Context) ([]models.AiContentTemplate, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.AiContentTemplate, error)
	UpdateTemplateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type BulkJobRepository interface {
	SaveJob(ctx context.Context, job models.BulkContentJob) (uuid.UUID, error)
	GetAllJobs(ctx context.Context) ([]models.BulkContentJob, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.BulkContentJob, error)
	UpdateJobFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
}
