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

var guidelineColumns = []string{
	"id", "name", "description", "guidelines", "version", "active",
	"created_at", "updated_at",
}

type SeoGuidelineRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSeoGuidelineRepository(db *pgxpool.Pool) *SeoGuidelineRepo {
	return &SeoGuidelineRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SeoGuidelineRepo) SaveGuideline(ctx context.Context, g models.SeoGuideline) (uuid.UUID, error) {
	const op = "repository.seo_repository.SaveGuideline"

	query, args, err := r.sb.Insert("seo_guidelines").
		Columns("name", "description", "guidelines", "version", "active").
		Values(g.Name, g.Description, g.Guidelines, g.Version, g.Active).
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

func (r *SeoGuidelineRepo) GetAllGuidelines(ctx context.Context) ([]models.SeoGuideline, error) {
	const op = "repository.seo_repository.GetAllGuidelines"

	query, args, err := r.sb.Select(guidelineColumns...).
		From("seo_guidelines").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var guidelines []models.SeoGuideline
	for rows.Next() {
		var g models.SeoGuideline
		if err := rows.Scan(guidelineScanDest(&g)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		guidelines = append(guidelines, g)
	}

	return guidelines, nil
}

func (r *SeoGuidelineRepo) GetActiveGuideline(ctx context.Context) (*models.SeoGuideline, error) {
	const op = "repository.seo_repository.GetActiveGuideline"

	query, args, err := r.sb.Select(guidelineColumns...).
		From("seo_guidelines").
		Where(sq.Eq{"active": true}).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var g models.SeoGuideline
	err = r.db.QueryRow(ctx, query, args...).Scan(guidelineScanDest(&g)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrGuidelineNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

func (r *SeoGuidelineRepo) GetGuidelineByID(ctx context.Context, id uuid.UUID) (*models.SeoGuideline, error) {
	const op = "repository.seo_repository.GetGuidelineByID"

	query, args, err := r.sb.Select(guidelineColumns...).
		From("seo_guidelines").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var g models.SeoGuideline
	err = r.db.QueryRow(ctx, query, args...).Scan(guidelineScanDest(&g)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrGuidelineNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

func (r *SeoGuidelineRepo) UpdateGuidelineFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.seo_repository.UpdateGuidelineFields"

	allowedFields := map[string]bool{
		"name":        true,
		"description": true,
		"guidelines":  true,
		"version":     true,
		"active":      true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := r.sb.Update("seo_guidelines").
		Set("updated_at", time.Now())

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
		return fmt.Errorf("%s: %w", op, storage.ErrGuidelineNotFound)
	}

	return nil
}

// SetActiveGuideline makes the target guideline the only active one.
// The verify-deactivate-activate sequence runs in a single transaction;
// an unknown id leaves every active flag untouched.
func (r *SeoGuidelineRepo) SetActiveGuideline(ctx context.Context, id uuid.UUID) error {
	const op = "repository.seo_repository.SetActiveGuideline"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	checkQuery, checkArgs, err := r.sb.Select("id").
		From("seo_guidelines").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var found uuid.UUID
	if err := tx.QueryRow(ctx, checkQuery, checkArgs...).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrGuidelineNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()

	clearQuery, clearArgs, err := r.sb.Update("seo_guidelines").
		Set("active", false).
		Set("updated_at", now).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	setQuery, setArgs, err := r.sb.Update("seo_guidelines").
		Set("active", true).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, setQuery, setArgs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func guidelineScanDest(g *models.SeoGuideline) []interface{} {
	return []interface{}{
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Guidelines,
		&g.Version,
		&g.Active,
		&g.CreatedAt,
		&g.UpdatedAt,
	}
}
