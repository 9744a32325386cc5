package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taxblog/internal/domain/models"
	"taxblog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var jobColumns = []string{
	"id", "name", "template_id", "guideline_id", "topics", "status",
	"progress", "total_items", "completed_items", "failed_items",
	"results", "error_log", "created_at", "completed_at",
}

type BulkJobRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBulkJobRepository(db *pgxpool.Pool) *BulkJobRepo {
	return &BulkJobRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BulkJobRepo) SaveJob(ctx context.Context, job models.BulkContentJob) (uuid.UUID, error) {
	const op = "repository.bulk_job_repository.SaveJob"

	topics, err := json.Marshal(job.Topics)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Insert("bulk_content_jobs").
		Columns("name", "template_id", "guideline_id", "topics", "status", "total_items").
		Values(job.Name, job.TemplateID, job.GuidelineID, topics, job.Status, job.TotalItems).
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

func (r *BulkJobRepo) GetAllJobs(ctx context.Context) ([]models.BulkContentJob, error) {
	const op = "repository.bulk_job_repository.GetAllJobs"

	query, args, err := r.sb.Select(jobColumns...).
		From("bulk_content_jobs").
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

	var jobs []models.BulkContentJob
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		jobs = append(jobs, *job)
	}

	return jobs, nil
}

func (r *BulkJobRepo) GetJobByID(ctx context.Context, id uuid.UUID) (*models.BulkContentJob, error) {
	const op = "repository.bulk_job_repository.GetJobByID"

	query, args, err := r.sb.Select(jobColumns...).
		From("bulk_content_jobs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	job, err := scanJob(r.db.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return job, nil
}

func (r *BulkJobRepo) UpdateJobFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.bulk_job_repository.UpdateJobFields"

	allowedFields := map[string]bool{
		"status":          true,
		"progress":        true,
		"completed_items": true,
		"failed_items":    true,
		"results":         true,
		"error_log":       true,
		"completed_at":    true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := r.sb.Update("bulk_content_jobs")

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		if field == "results" {
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			value = raw
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
		return fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}

	return nil
}

func (r *BulkJobRepo) DeleteJob(ctx context.Context, id uuid.UUID) error {
	const op = "repository.bulk_job_repository.DeleteJob"

	query, args, err := r.sb.Delete("bulk_content_jobs").
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
		return fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}

	return nil
}

// scanJob decodes one row; topics and results are stored as jsonb.
func scanJob(scan func(...interface{}) error) (*models.BulkContentJob, error) {
	var (
		job        models.BulkContentJob
		topicsRaw  []byte
		resultsRaw []byte
	)

	err := scan(
		&job.ID,
		&job.Name,
		&job.TemplateID,
		&job.GuidelineID,
		&topicsRaw,
		&job.Status,
		&job.Progress,
		&job.TotalItems,
		&job.CompletedItems,
		&job.FailedItems,
		&resultsRaw,
		&job.ErrorLog,
		&job.CreatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(topicsRaw) > 0 {
		if err := json.Unmarshal(topicsRaw, &job.Topics); err != nil {
			return nil, fmt.Errorf("decode topics: %w", err)
		}
	}
	if len(resultsRaw) > 0 {
		if err := json.Unmarshal(resultsRaw, &job.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	}

	return &job, nil
}
