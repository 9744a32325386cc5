package dto

import "github.com/google/uuid"

type CreateTemplateRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	ContentType     string   `json:"content_type" validate:"required"`
	TargetAudience  string   `json:"target_audience" validate:"required"`
	PromptTemplate  string   `json:"prompt_template" validate:"required"`
	ExampleKeywords []string `json:"example_keywords,omitempty"`
	Active          bool     `json:"active,omitempty"`
}

type UpdateTemplateRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	ContentType     *string  `json:"content_type,omitempty"`
	TargetAudience  *string  `json:"target_audience,omitempty"`
	PromptTemplate  *string  `json:"prompt_template,omitempty"`
	ExampleKeywords []string `json:"example_keywords,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

type CreateBulkJobRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	TemplateID  *uuid.UUID `json:"template_id,omitempty"`
	GuidelineID *uuid.UUID `json:"guideline_id,omitempty"`
	Topics      []string   `json:"topics" validate:"required,min=1,dive,required"`
}
