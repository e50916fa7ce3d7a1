package playback

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podhaven/backend/internal/catalog"
	"github.com/podhaven/backend/internal/models"
	"github.com/podhaven/backend/internal/profile"
	"github.com/podhaven/backend/pkg/response"
)

// PlayRequest is the body for POST /player/play.
type PlayRequest struct {
	Kind models.TrackKind `json:"kind" binding:"required"`
	ID   string           `json:"id" binding:"required"`
}

// Handler handles player HTTP endpoints. It resolves episode and recording
// IDs into playback tracks and drives the shared controller.
type Handler struct {
	controller *Controller
	catalog    *catalog.Store
	profiles   *profile.Store
}

// NewHandler creates a player handler.
func NewHandler(controller *Controller, catalogStore *catalog.Store, profiles *profile.Store) *Handler {
	return &Handler{controller: controller, catalog: catalogStore, profiles: profiles}
}

// Play handles POST /player/play: loads the requested item into the player,
// superseding whatever was playing.
func (h *Handler) Play(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var track models.PlaybackTrack
	switch req.Kind {
	case models.TrackCatalogEpisode:
		ep, pod, ok := h.catalog.Episode(req.ID)
		if !ok {
			response.NotFound(c, "episode not found")
			return
		}
		track = models.PlaybackTrack{
			Kind:            models.TrackCatalogEpisode,
			Title:           ep.Title,
			Subtitle:        pod.Title,
			DisplayDuration: ep.Duration,
			SourceURL:       ep.AudioURL,
		}
	case models.TrackUserRecording:
		id, err := uuid.Parse(req.ID)
		if err != nil {
			response.BadRequest(c, "invalid recording id")
			return
		}
		rec, ok := h.profiles.Recording(id)
		if !ok {
			response.NotFound(c, "recording not found")
			return
		}
		track = models.PlaybackTrack{
			Kind:            models.TrackUserRecording,
			Title:           rec.Title,
			Subtitle:        "My Recording",
			DisplayDuration: formatDuration(rec.DurationSeconds),
			SourceURL:       rec.SourceURL,
			StartSeconds:    rec.TrimStart,
			EndSeconds:      rec.TrimEnd,
		}
	default:
		response.BadRequest(c, "unknown track kind")
		return
	}

	h.profiles.AddHistory(req.ID)
	response.OK(c, h.controller.Play(track))
}

// Toggle handles POST /player/toggle.
func (h *Handler) Toggle(c *gin.Context) {
	response.OK(c, h.controller.Toggle())
}

// State handles GET /player.
func (h *Handler) State(c *gin.Context) {
	response.OK(c, h.controller.State())
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
