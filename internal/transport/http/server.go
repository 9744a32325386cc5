package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/transport/http/dto"
	"taxblog/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "taxblog/docs"
)

type ContentService interface {
	Generate(ctx context.Context, req dto.GenerateContentRequest) (*dto.GenerateContentResult, error)
}

type ConnectionProber interface {
	Ping(ctx context.Context) error
}

type BlogService interface {
	CreatePost(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	ReadPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListAllPosts(ctx context.Context) ([]models.Post, error)
	ListPublishedPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByCategory(ctx context.Context, category string) ([]models.Post, error)
	ListScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error)
	DeleteScheduledPost(ctx context.Context, id uuid.UUID) error
	PublishScheduledPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	PublishDuePosts(ctx context.Context) ([]models.Post, error)
}

type SeoService interface {
	ListGuidelines(ctx context.Context) ([]models.SeoGuideline, error)
	GetActiveGuideline(ctx context.Context) (*models.SeoGuideline, error)
	CreateGuideline(ctx context.Context, req dto.CreateGuidelineRequest) (*models.SeoGuideline, error)
	UpdateGuideline(ctx context.Context, id uuid.UUID, req dto.UpdateGuidelineRequest) (*models.SeoGuideline, error)
	ActivateGuideline(ctx context.Context, id uuid.UUID) error
}

type TemplateService interface {
	ListTemplates(ctx context.Context, activeOnly bool) ([]models.AiContentTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.AiContentTemplate, error)
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*models.AiContentTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req dto.UpdateTemplateRequest) (*models.AiContentTemplate, error)
	ListJobs(ctx context.Context) ([]models.BulkContentJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.BulkContentJob, error)
	CreateJob(ctx context.Context, req dto.CreateBulkJobRequest) (*models.BulkContentJob, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

type UserService interface {
	Login(ctx context.Context, username, password string) (string, error)
	RegisterNewUser(ctx context.Context, username, password string, isAdmin bool) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type Routers struct {
	log             *slog.Logger
	env             string
	ContentService  ContentService
	Prober          ConnectionProber
	BlogService     BlogService
	SeoService      SeoService
	TemplateService TemplateService
	UserService     UserService
}

func NewRouter(
	log *slog.Logger,
	env string,
	contentService ContentService,
	prober ConnectionProber,
	blogService BlogService,
	seoService SeoService,
	templateService TemplateService,
	userService UserService,
) *Routers {
	return &Routers{
		log:             log,
		env:             env,
		ContentService:  contentService,
		Prober:          prober,
		BlogService:     blogService,
		SeoService:      seoService,
		TemplateService: templateService,
		UserService:     userService,
	}
}

// Health godoc
// @Summary API liveness
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Router /api [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "tax blog API",
		Data: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// NotFound is the catch-all for unknown /api/* paths.
func (r *Routers) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, response.ErrEndpointNotFound)
}
