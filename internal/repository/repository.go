package repository

import (
	"context"
	"fmt"
	"strings"

	"taxblog/internal/storage/postgresql"

	"github.com/jackc/pgx/v4/pgxpool"
)

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

type Repository struct {
	db        *pgxpool.Pool
	User      UserRepository
	Post      PostRepository
	Scheduled ScheduledPostRepository
	Seo       SeoGuidelineRepository
	Template  TemplateRepository
	Job       BulkJobRepository
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	return NewRepositoryWithPool(db.Pool()), nil
}

func NewRepositoryWithPool(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:        db,
		User:      NewUserRepository(db),
		Post:      NewPostRepository(db),
		Scheduled: NewScheduledPostRepository(db),
		Seo:       NewSeoGuidelineRepository(db),
		Template:  NewTemplateRepository(db),
		Job:       NewBulkJobRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}
