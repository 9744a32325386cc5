package models

import (
	"time"

	"github.com/google/uuid"
)

// AiContentTemplate is a reusable prompt skeleton keyed by content type
// and target audience.
type AiContentTemplate struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	ContentType     string    `db:"content_type" json:"content_type"`
	TargetAudience  string    `db:"target_audience" json:"target_audience"`
	PromptTemplate  string    `db:"prompt_template" json:"prompt_template"`
	ExampleKeywords []string  `db:"example_keywords" json:"example_keywords"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// BulkContentJob is a declared batch of topics to generate. It is a
// persisted intent only; no executor runs in this repository.
type BulkContentJob struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	TemplateID     *uuid.UUID     `db:"template_id" json:"template_id,omitempty"`
	GuidelineID    *uuid.UUID     `db:"guideline_id" json:"guideline_id,omitempty"`
	Topics         []string       `db:"topics" json:"topics"`
	Status         string         `db:"status" json:"status"`
	Progress       int            `db:"progress" json:"progress"`
	TotalItems     int            `db:"total_items" json:"total_items"`
	CompletedItems int            `db:"completed_items" json:"completed_items"`
	FailedItems    int            `db:"failed_items" json:"failed_items"`
	Results        map[string]any `db:"results" json:"results,omitempty"`
	ErrorLog       string         `db:"error_log" json:"error_log,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	CompletedAt    *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
}

// Bulk job statuses.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
