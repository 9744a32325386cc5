package repository

import (
	"context"
	"errors"
	"fmt"

	"taxblog/internal/domain/models"
	"taxblog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var templateColumns = []string{
	"id", "name", "content_type", "target_audience", "prompt_template",
	"example_keywords", "active", "created_at",
}

type TemplateRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *TemplateRepo) SaveTemplate(ctx context.Context, t models.AiContentTemplate) (uuid.UUID, error) {
	const op = "repository.template_repository.SaveTemplate"

	query, args, err := r.sb.Insert("ai_content_templates").
		Columns("name", "content_type", "target_audience", "prompt_template", "example_keywords", "active").
		Values(t.Name, t.ContentType, t.TargetAudience, t.PromptTemplate, t.ExampleKeywords, t.Active).
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

func (r *TemplateRepo) GetAllTemplates(ctx context.Context) ([]models.AiContentTemplate, error) {
	const op = "repository.template_repository.GetAllTemplates"

	builder := r.sb.Select(templateColumns...).
		From("ai_content_templates").
		OrderBy("created_at DESC")

	return r.list(ctx, op, builder)
}

func (r *TemplateRepo) GetActiveTemplates(ctx context.Context) ([]models.AiContentTemplate, error) {
	const op = "repository.template_repository.GetActiveTemplates"

	builder := r.sb.Select(templateColumns...).
		From("ai_content_templates").
		Where(sq.Eq{"active": true}).
		OrderBy("created_at DESC")

	return r.list(ctx, op, builder)
}

func (r *TemplateRepo) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]models.AiContentTemplate, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var templates []models.AiContentTemplate
	for rows.Next() {
		var t models.AiContentTemplate
		if err := rows.Scan(templateScanDest(&t)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (r *TemplateRepo) GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.AiContentTemplate, error) {
	const op = "repository.template_repository.GetTemplateByID"

	query, args, err := r.sb.Select(templateColumns...).
		From("ai_content_templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var t models.AiContentTemplate
	err = r.db.QueryRow(ctx, query, args...).Scan(templateScanDest(&t)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

func (r *TemplateRepo) UpdateTemplateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.template_repository.UpdateTemplateFields"

	allowedFields := map[string]bool{
		"name":             true,
		"content_type":     true,
		"target_audience":  true,
		"prompt_template":  true,
		"example_keywords": true,
		"active":           true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := r.sb.Update("ai_content_templates")

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTemplateNotFound)
	}

	return nil
}

func templateScanDest(t *models.AiContentTemplate) []interface{} {
	return []interface{}{
		&t.ID,
		&t.Name,
		&t.ContentType,
		&t.TargetAudience,
		&t.PromptTemplate,
		&t.ExampleKeywords,
		&t.Active,
		&t.CreatedAt,
	}
}
