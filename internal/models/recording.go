package models

import (
	"time"

	"github.com/google/uuid"
)

// Recording is a saved user artifact: clip + resolved trim bounds + metadata.
// Owned by the profile's recording list; never mutated after save except by
// deletion.
type Recording struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Tags            []string  `json:"tags"`
	SourceURL       string    `json:"source_url"`
	DurationSeconds int       `json:"duration_seconds"`
	TrimStart       float64   `json:"trim_start"` // seconds
	TrimEnd         float64   `json:"trim_end"`   // seconds
	CreatedAt       time.Time `json:"created_at"`
}
