package models

import (
	"time"

	"github.com/google/uuid"
)

// SeoGuideline is a named, versioned block of authoring rules.
// At most one guideline is active at a time.
type SeoGuideline struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Guidelines  string    `db:"guidelines" json:"guidelines"`
	Version     string    `db:"version" json:"version"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
