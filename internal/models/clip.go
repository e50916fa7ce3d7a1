package models

import (
	"time"

	"github.com/google/uuid"
)

// Clip is the raw result of one finished capture. Immutable once produced:
// the session hands it out after Stop and never touches it again.
type Clip struct {
	ID              uuid.UUID `json:"id"`
	AudioData       []byte    `json:"-"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// GeneratedMetadata is the optional AI-produced description of a clip.
// Absent until enrichment succeeds; editable by the user before save.
type GeneratedMetadata struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}
