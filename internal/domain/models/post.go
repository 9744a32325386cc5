package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published-or-draft article. Slug is globally unique,
// PublishedAt is set only when Published flips to true.
type Post struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	Excerpt        string     `db:"excerpt" json:"excerpt,omitempty"`
	Slug           string     `db:"slug" json:"slug"`
	Category       string     `db:"category" json:"category"`
	Tags           []string   `db:"tags" json:"tags"`
	MainKeyword    string     `db:"main_keyword" json:"main_keyword,omitempty"`
	SeoTitle       string     `db:"seo_title" json:"seo_title,omitempty"`
	SeoDescription string     `db:"seo_description" json:"seo_description,omitempty"`
	AuthorID       *uuid.UUID `db:"author_id" json:"author_id,omitempty"`
	Published      bool       `db:"published" json:"published"`
	Featured       bool       `db:"featured" json:"featured"`
	AiGenerated    bool       `db:"ai_generated" json:"ai_generated"`
	Views          int        `db:"views" json:"views"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	PublishedAt    *time.Time `db:"published_at" json:"published_at,omitempty"`
}

// ScheduledPost is staged content awaiting one-time automatic publication.
// A row is consumed exactly once by the publish operation.
type ScheduledPost struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	Excerpt        string     `db:"excerpt" json:"excerpt,omitempty"`
	Slug           string     `db:"slug" json:"slug"`
	Category       string     `db:"category" json:"category"`
	Tags           []string   `db:"tags" json:"tags"`
	MainKeyword    string     `db:"main_keyword" json:"main_keyword,omitempty"`
	SeoTitle       string     `db:"seo_title" json:"seo_title,omitempty"`
	SeoDescription string     `db:"seo_description" json:"seo_description,omitempty"`
	AuthorID       *uuid.UUID `db:"author_id" json:"author_id,omitempty"`
	ScheduledFor   time.Time  `db:"scheduled_for" json:"scheduled_for"`
	AiGenerated    bool       `db:"ai_generated" json:"ai_generated"`
	AiPrompt       string     `db:"ai_prompt" json:"ai_prompt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
