package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var postColumns = []string{
	"id", "title", "content", "excerpt", "slug", "category", "tags",
	"main_keyword", "seo_title", "seo_description", "author_id",
	"published", "featured", "ai_generated", "views",
	"created_at", "updated_at", "published_at",
}

type PostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepository(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostRepo) SavePost(ctx context.Context, post models.Post) (uuid.UUID, error) {
	const op = "repository.post_repository.SavePost"

	query, args, err := r.sb.Insert("posts").
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
			"featured",
			"ai_generated",
			"published_at",
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
			post.Published,
			post.Featured,
			post.AiGenerated,
			post.PublishedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *PostRepo) GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "repository.post_repository.GetPostByID"

	return r.getOne(ctx, op, sq.Eq{"id": postID})
}

func (r *PostRepo) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	const op = "repository.post_repository.GetPostBySlug"

	return r.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (r *PostRepo) getOne(ctx context.Context, op string, pred sq.Eq) (*models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var post models.Post
	err = r.db.QueryRow(ctx, query, args...).Scan(scanDest(&post)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

func (r *PostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	const op = "repository.post_repository.GetAllPosts"

	builder := r.sb.Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC")

	return r.list(ctx, op, builder)
}

// GetPublishedPosts returns published posts ordered by publication time,
// newest first.
func (r *PostRepo) GetPublishedPosts(ctx context.Context) ([]models.Post, error) {
	const op = "repository.post_repository.GetPublishedPosts"

	builder := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"published": true}).
		OrderBy("published_at DESC")

	return r.list(ctx, op, builder)
}

func (r *PostRepo) GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	const op = "repository.post_repository.GetPostsByCategory"

	builder := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"category": category, "published": true}).
		OrderBy("published_at DESC")

	return r.list(ctx, op, builder)
}

func (r *PostRepo) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]models.Post, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(scanDest(&post)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (r *PostRepo) UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.post_repository.UpdatePostFields"

	allowedFields := map[string]bool{
		"title":           true,
		"content":         true,
		"excerpt":         true,
		"slug":            true,
		"category":        true,
		"tags":            true,
		"main_keyword":    true,
		"seo_title":       true,
		"seo_description": true,
		"published":       true,
		"featured":        true,
		"published_at":    true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := r.sb.Update("posts").
		Set("updated_at", time.Now())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": postID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (r *PostRepo) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.post_repository.DeletePost"

	query, args, err := r.sb.Delete("posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

// IncrementViews bumps the view counter with a single additive update,
// not a read-modify-write.
func (r *PostRepo) IncrementViews(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.post_repository.IncrementViews"

	query, args, err := r.sb.Update("posts").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func scanDest(post *models.Post) []interface{} {
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
		&post.Published,
		&post.Featured,
		&post.AiGenerated,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.PublishedAt,
	}
}
