package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Content        string     `json:"content" validate:"required"`
	Excerpt        string     `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Slug           string     `json:"slug,omitempty"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	MainKeyword    string     `json:"main_keyword,omitempty"`
	SeoTitle       string     `json:"seo_title,omitempty"`
	SeoDescription string     `json:"seo_description,omitempty"`
	AuthorID       *uuid.UUID `json:"author_id,omitempty"`
	Published      bool       `json:"published,omitempty"`
	Featured       bool       `json:"featured,omitempty"`
}

type UpdatePostRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content        *string    `json:"content,omitempty"`
	Excerpt        *string    `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Slug           *string    `json:"slug,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	MainKeyword    *string    `json:"main_keyword,omitempty"`
	SeoTitle       *string    `json:"seo_title,omitempty"`
	SeoDescription *string    `json:"seo_description,omitempty"`
	Published      *bool      `json:"published,omitempty"`
	Featured       *bool      `json:"featured,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}
