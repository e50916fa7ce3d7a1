package enrich

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/models"
)

// Generator produces metadata for an audio buffer. Satisfied by *Client;
// narrowed to an interface so handlers can be tested without a server.
type Generator interface {
	Generate(ctx context.Context, audio []byte) (*models.GeneratedMetadata, error)
}

// Enricher serializes enrichment calls: at most one outstanding attempt.
// Duplicate triggers while a call is in flight are rejected, mirroring the
// disabled trigger affordance in the UI.
type Enricher struct {
	gen    Generator
	logger *zap.Logger

	mu   sync.Mutex
	busy bool
}

// NewEnricher wraps a generator with single-flight semantics.
func NewEnricher(gen Generator, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{gen: gen, logger: logger}
}

// Busy reports whether a call is outstanding.
func (e *Enricher) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Enrich runs one enrichment attempt for the clip. Returns ErrInFlight when
// a previous attempt has not resolved yet. On failure the clip is unaffected
// and the caller decides whether to retry or save with defaults.
func (e *Enricher) Enrich(ctx context.Context, clip *models.Clip) (*models.GeneratedMetadata, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return nil, ErrInFlight
	}
	e.busy = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	}()

	meta, err := e.gen.Generate(ctx, clip.AudioData)
	if err != nil {
		e.logger.Warn("enrichment failed", zap.String("clip_id", clip.ID.String()), zap.Error(err))
		return nil, err
	}
	e.logger.Info("enrichment succeeded",
		zap.String("clip_id", clip.ID.String()),
		zap.String("title", meta.Title),
		zap.Int("tags", len(meta.Tags)))
	return meta, nil
}
