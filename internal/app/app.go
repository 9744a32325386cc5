package app

import (
	"context"
	"log/slog"

	httpapp "taxblog/internal/app/http"
	"taxblog/internal/config"
	"taxblog/internal/llm"
	"taxblog/internal/repository"
	blogservice "taxblog/internal/services/blog_service"
	contentservice "taxblog/internal/services/content_service"
	seoservice "taxblog/internal/services/seo_service"
	templateservice "taxblog/internal/services/template_service"
	userservice "taxblog/internal/services/user_service"
	redisstorage "taxblog/internal/storage/redis"
	httprouters "taxblog/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	repo       *repository.Repository
	cache      *redisstorage.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	repo, err := repository.NewRepository(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	// redis is optional; without it the guideline cache is skipped
	var cache *redisstorage.Client
	if cfg.Redis.RedisAddr != "" {
		cache = redisstorage.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	}

	llmClient := llm.NewClient(cfg.OpenAI)

	userService := userservice.NewUserService(log, repo.User, cfg.Token, cfg.TokenTTL)
	blogService := blogservice.NewBlogService(log, repo.Post, repo.Scheduled)
	contentService := contentservice.NewContentService(log, llmClient, repo.Post, repo.Scheduled, repo.Seo)
	seoService := seoservice.NewSeoService(log, repo.Seo, cache)
	templateService := templateservice.NewTemplateService(log, repo.Template, repo.Job)

	routers := httprouters.NewRouter(
		log,
		cfg.Env,
		contentService,
		llmClient,
		blogService,
		seoService,
		templateService,
		userService,
	)

	server := httpapp.New(log, cfg.Env, cfg.Token, cfg.Session, cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
		repo:       repo,
		cache:      cache,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		panic(err)
	}

	a.repo.Close()

	if a.cache != nil {
		a.cache.Close()
	}
}
