package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var scheduledColumns = []string{
	"id", "title", "content", "excerpt", "slug", "category", "tags",
	"main_keyword", "seo_title", "seo_description", "author_id",
	"scheduled_for", "ai_generated", "ai_prompt", "created_at",
}

type ScheduledPostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewScheduledPostRepository(db *pgxpool.Pool) *ScheduledPostRepo {
	return &ScheduledPostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ScheduledPostRepo) SaveScheduledPost(ctx context.Context, post models.ScheduledPost) (uuid.UUID, error) {
	const op = "repository.scheduled_post_repository.SaveScheduledPost"

	query, args, err := r.sb.Insert("scheduled_posts").
		Columns(
			"title",
			"content",
			"excerpt",
			"slug",
			"category",
			"tags",
			"main_keyword",
			"seo_title",
			"seo_description",
			"author_id",
			"scheduled_for",
			"ai_generated",
			"ai_prompt",
		).
		Values(
			post.Title,
			post.Content,
			post.Excerpt,
			post.Slug,
			post.Category,
			post.Tags,
			post.MainKeyword,
			post.SeoTitle,
			post.SeoDescription,
			post.AuthorID,
			post.ScheduledFor,
			post.AiGenerated,
			post.AiPrompt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ScheduledPostRepo) GetScheduledPostByID(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error) {
	const op = "repository.scheduled_post_repository.GetScheduledPostByID"

	query, args, err := r.sb.Select(scheduledColumns...).
		From("scheduled_posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var post models.ScheduledPost
	err = r.db.QueryRow(ctx, query, args...).Scan(scheduledScanDest(&post)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrScheduledNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

func (r *ScheduledPostRepo) GetAllScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	const op = "repository.scheduled_post_repository.GetAllScheduledPosts"

	builder := r.sb.Select(scheduledColumns...).
		From("scheduled_posts").
		OrderBy("created_at DESC")

	return r.list(ctx, op, builder)
}

func (r *ScheduledPostRepo) GetScheduledPostsDue(ctx context.Context, now time.Time) ([]models.ScheduledPost, error) {
	const op = "repository.scheduled_post_repository.GetScheduledPostsDue"

	builder := r.sb.Select(scheduledColumns...).
		From("scheduled_posts").
		Where(sq.LtOrEq{"scheduled_for": now}).
		OrderBy("scheduled_for ASC")

	return r.list(ctx, op, builder)
}

func (r *ScheduledPostRepo) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]models.ScheduledPost, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.ScheduledPost
	for rows.Next() {
		var post models.ScheduledPost
		if err := rows.Scan(scheduledScanDest(&post)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (r *ScheduledPostRepo) DeleteScheduledPost(ctx context.Context, id uuid.UUID) error {
	const op = "repository.scheduled_post_repository.DeleteScheduledPost"

	query, args, err := r.sb.Delete("scheduled_posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrScheduledNotFound)
	}

	return nil
}

// PublishScheduledPost atomically consumes a scheduled row and inserts the
// corresponding published post. The DELETE ... RETURNING is the concurrency
// guard: only one of two racing calls can observe the row, the other gets
// ErrScheduledNotFound and nothing is inserted.
func (r *ScheduledPostRepo) PublishScheduledPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	const op = "repository.scheduled_post_repository.PublishScheduledPost"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	delQuery, delArgs, err := r.sb.Delete("scheduled_posts").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(scheduledColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sp models.ScheduledPost
	err = tx.QueryRow(ctx, delQuery, delArgs...).Scan(scheduledScanDest(&sp)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrScheduledNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	insQuery, insArgs, err := r.sb.Insert("posts").
		Columns(
			"title",
			"content",
			"excerpt",
			"slug",
			"category",
			"tags",
			"main_keyword",
			"seo_title",
			"seo_description",
			"author_id",
			"published",
			"ai_generated",
			"published_at",
		).
		Values(
			sp.Title,
			sp.Content,
			sp.Excerpt,
			sp.Slug,
			sp.Category,
			sp.Tags,
			sp.MainKeyword,
			sp.SeoTitle,
			sp.SeoDescription,
			sp.AuthorID,
			true,
			sp.AiGenerated,
			now,
		).
		Suffix("RETURNING " + joinColumns(postColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var post models.Post
	err = tx.QueryRow(ctx, insQuery, insArgs...).Scan(scanDest(&post)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

func scheduledScanDest(post *models.ScheduledPost) []interface{} {
	return []interface{}{
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.Slug,
		&post.Category,
		&post.Tags,
		&post.MainKeyword,
		&post.SeoTitle,
		&post.SeoDescription,
		&post.AuthorID,
		&post.ScheduledFor,
		&post.AiGenerated,
		&post.AiPrompt,
		&post.CreatedAt,
	}
}
