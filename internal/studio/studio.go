// Package studio coordinates one recording draft: the capture session's
// finished clip, the user's trim window, and optional generated metadata,
// combined into a saved Recording.
package studio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/capture"
	"github.com/podhaven/backend/internal/models"
)

// ErrNoClip means save or enrichment was requested with nothing recorded.
var ErrNoClip = errors.New("studio: no finished clip")

// Defaults applied when a clip is saved without generated metadata.
const (
	DefaultDescription = "No description."
	defaultTitleFormat = "1/2/2006" // en-US short date, "Recording 10/1/2023"
)

// Studio owns the draft state between a finished capture and a saved
// recording.
type Studio struct {
	session *capture.Session
	logger  *zap.Logger

	mu   sync.Mutex
	trim TrimWindow
	meta *models.GeneratedMetadata
}

// New creates a studio around a capture session.
func New(session *capture.Session, logger *zap.Logger) *Studio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Studio{
		session: session,
		logger:  logger,
		trim:    NewTrimWindow(),
	}
}

// Session exposes the underlying capture session.
func (s *Studio) Session() *capture.Session { return s.session }

// Clip returns the finished clip awaiting save, or nil.
func (s *Studio) Clip() *models.Clip { return s.session.Clip() }

// Trim returns the current trim window.
func (s *Studio) Trim() TrimWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trim
}

// AdjustTrim applies optional new bounds. Each bound is clamped per the
// window rules; the resulting window is returned.
func (s *Studio) AdjustTrim(start, end *float64) TrimWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if start != nil {
		s.trim = s.trim.SetStart(*start)
	}
	if end != nil {
		s.trim = s.trim.SetEnd(*end)
	}
	return s.trim
}

// Metadata returns the draft metadata, or nil when none was generated.
func (s *Studio) Metadata() *models.GeneratedMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// SetMetadata attaches or edits draft metadata (from enrichment or the
// user's edits before save).
func (s *Studio) SetMetadata(meta models.GeneratedMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = &meta
}

// Save combines the finished clip, the trim window, and any metadata into a
// Recording, then resets the studio to a clean state. The returned audio
// buffer is the clip's encoded bytes, to be stored with the recording.
// The trim invariant is re-validated here rather than trusting the caller.
func (s *Studio) Save(now time.Time) (*models.Recording, []byte, error) {
	clip := s.session.Clip()
	if clip == nil {
		return nil, nil, ErrNoClip
	}

	s.mu.Lock()
	trim := s.trim.Normalize()
	meta := s.meta
	s.mu.Unlock()

	trimStart, trimEnd := trim.Resolve(clip.DurationSeconds)
	rec := &models.Recording{
		ID:              uuid.New(),
		Title:           fmt.Sprintf("Recording %s", now.Format(defaultTitleFormat)),
		Description:     DefaultDescription,
		Tags:            []string{},
		DurationSeconds: clip.DurationSeconds,
		TrimStart:       trimStart,
		TrimEnd:         trimEnd,
		CreatedAt:       now,
	}
	if meta != nil {
		if meta.Title != "" {
			rec.Title = meta.Title
		}
		if meta.Summary != "" {
			rec.Description = meta.Summary
		}
		if len(meta.Tags) > 0 {
			rec.Tags = meta.Tags
		}
	}
	rec.SourceURL = fmt.Sprintf("/recordings/%s/audio", rec.ID)

	audio := clip.AudioData
	s.reset()
	s.logger.Info("recording saved",
		zap.String("recording_id", rec.ID.String()),
		zap.Float64("trim_start", rec.TrimStart),
		zap.Float64("trim_end", rec.TrimEnd))
	return rec, audio, nil
}

// Discard drops the clip and draft state without saving.
func (s *Studio) Discard() {
	s.reset()
}

func (s *Studio) reset() {
	s.session.Reset()
	s.mu.Lock()
	s.trim = NewTrimWindow()
	s.meta = nil
	s.mu.Unlock()
}
