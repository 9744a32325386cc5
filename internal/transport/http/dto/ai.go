package dto

import (
	"time"

	"taxblog/internal/llm"

	"github.com/google/uuid"
)

// GenerateContentRequest is the body of POST /api/ai/generate.
type GenerateContentRequest struct {
	Topic           string `json:"topic" validate:"required"`
	Category        string `json:"category,omitempty"`
	Tone            string `json:"tone,omitempty" validate:"omitempty,oneof=professional friendly authoritative conversational"`
	TargetWordCount int    `json:"targetWordCount,omitempty" validate:"omitempty,min=500,max=3000"`
	ScheduleFor     string `json:"scheduleFor,omitempty"`
	SaveAsDraft     bool   `json:"saveAsDraft,omitempty"`
}

// Generation result types.
const (
	GenerateTypeScheduled = "scheduled"
	GenerateTypeDraft     = "draft"
	GenerateTypePreview   = "preview"
)

// PostPayload is the ready-to-save shape returned in preview mode.
type PostPayload struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt"`
	Slug           string     `json:"slug"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	MainKeyword    string     `json:"main_keyword"`
	SeoTitle       string     `json:"seo_title"`
	SeoDescription string     `json:"seo_description"`
	AuthorID       *uuid.UUID `json:"author_id"`
	Published      bool       `json:"published"`
	AiGenerated    bool       `json:"ai_generated"`
	AiPrompt       string     `json:"ai_prompt"`
}

// GenerateContentResult is the success body of POST /api/ai/generate,
// tagged by what happened to the generated content.
type GenerateContentResult struct {
	Success      bool                  `json:"success"`
	Type         string                `json:"type"`
	ID           *uuid.UUID            `json:"id,omitempty"`
	Content      *llm.GeneratedContent `json:"content"`
	PostData     *PostPayload          `json:"postData,omitempty"`
	ScheduledFor *time.Time            `json:"scheduledFor,omitempty"`
	Message      string                `json:"message"`
}
