package studio

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/capture"
	"github.com/podhaven/backend/internal/enrich"
	"github.com/podhaven/backend/internal/models"
	"github.com/podhaven/backend/internal/profile"
	"github.com/podhaven/backend/pkg/response"
)

// TrimRequest is the body for PATCH /studio/trim. Either bound is optional.
type TrimRequest struct {
	StartFraction *float64 `json:"start_fraction"`
	EndFraction   *float64 `json:"end_fraction"`
}

// MetadataRequest is the body for PATCH /studio/metadata (user edits after
// generation, before save).
type MetadataRequest struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Handler handles studio HTTP endpoints: capture control, trim, enrichment,
// and save/discard.
type Handler struct {
	studio   *Studio
	enricher *enrich.Enricher
	profiles *profile.Store
	logger   *zap.Logger
}

// NewHandler creates a studio handler.
func NewHandler(s *Studio, enricher *enrich.Enricher, profiles *profile.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{studio: s, enricher: enricher, profiles: profiles, logger: logger}
}

// State handles GET /studio: a full snapshot of the draft.
func (h *Handler) State(c *gin.Context) {
	sess := h.studio.Session()
	response.OK(c, gin.H{
		"capture_state":   sess.State(),
		"elapsed_seconds": sess.Elapsed(),
		"clip":            sess.Clip(),
		"trim":            h.studio.Trim(),
		"metadata":        h.studio.Metadata(),
		"enriching":       h.enricher.Busy(),
	})
}

// StartCapture handles POST /studio/capture/start.
func (h *Handler) StartCapture(c *gin.Context) {
	err := h.studio.Session().Start(c.Request.Context())
	switch {
	case err == nil:
		response.OK(c, gin.H{"capture_state": h.studio.Session().State()})
	case errors.Is(err, capture.ErrSessionActive):
		response.Conflict(c, err.Error())
	default:
		// Permission denial and device failure are fatal for the attempt;
		// the session is already back in idle.
		response.BadRequest(c, err.Error())
	}
}

// StopCapture handles POST /studio/capture/stop. Stopping while not
// capturing is a no-op that reports the current state.
func (h *Handler) StopCapture(c *gin.Context) {
	clip := h.studio.Session().Stop()
	response.OK(c, gin.H{
		"capture_state": h.studio.Session().State(),
		"clip":          clip,
	})
}

// AdjustTrim handles PATCH /studio/trim. Out-of-range bounds are clamped,
// never rejected.
func (h *Handler) AdjustTrim(c *gin.Context) {
	var req TrimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	response.OK(c, h.studio.AdjustTrim(req.StartFraction, req.EndFraction))
}

// Enrich handles POST /studio/enrich: one blocking AI call per trigger.
func (h *Handler) Enrich(c *gin.Context) {
	clip := h.studio.Clip()
	if clip == nil {
		response.BadRequest(c, ErrNoClip.Error())
		return
	}
	meta, err := h.enricher.Enrich(c.Request.Context(), clip)
	switch {
	case errors.Is(err, enrich.ErrInFlight):
		response.Conflict(c, err.Error())
		return
	case err != nil:
		// Non-fatal: the clip keeps its draft state; the user may retry or
		// save with defaults.
		response.BadGateway(c, err.Error())
		return
	}
	h.studio.SetMetadata(*meta)
	response.OK(c, meta)
}

// UpdateMetadata handles PATCH /studio/metadata.
func (h *Handler) UpdateMetadata(c *gin.Context) {
	var req MetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	meta := models.GeneratedMetadata{Title: req.Title, Summary: req.Summary, Tags: req.Tags}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	h.studio.SetMetadata(meta)
	response.OK(c, meta)
}

// Save handles POST /studio/save: persists the draft into the profile's
// recording list and resets the studio.
func (h *Handler) Save(c *gin.Context) {
	rec, audio, err := h.studio.Save(time.Now())
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.profiles.AddRecording(*rec, audio)
	response.Created(c, rec)
}

// Discard handles POST /studio/discard.
func (h *Handler) Discard(c *gin.Context) {
	h.studio.Discard()
	response.NoContent(c)
}
