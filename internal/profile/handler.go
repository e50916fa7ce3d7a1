package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/catalog"
	"github.com/podhaven/backend/internal/models"
	"github.com/podhaven/backend/pkg/response"
)

// UpdateRequest is the body for PATCH /profile.
type UpdateRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Handler handles profile, subscription, and recording HTTP endpoints.
type Handler struct {
	store   *Store
	catalog *catalog.Store
	logger  *zap.Logger
}

// NewHandler creates a profile handler.
func NewHandler(store *Store, catalogStore *catalog.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, catalog: catalogStore, logger: logger}
}

// Get handles GET /profile.
func (h *Handler) Get(c *gin.Context) {
	u := h.store.User()
	response.OK(c, gin.H{
		"user":               u,
		"recording_count":    len(h.store.Recordings()),
		"subscription_count": len(u.Subscriptions),
	})
}

// Update handles PATCH /profile.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	response.OK(c, h.store.UpdateUser(req.Name, req.AvatarURL))
}

// ToggleSubscription handles POST /podcasts/:id/subscribe. Subscribing to an
// already-subscribed podcast unsubscribes.
func (h *Handler) ToggleSubscription(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.Get(id); !ok {
		response.NotFound(c, "podcast not found")
		return
	}
	subscribed := h.store.ToggleSubscription(id)
	response.OK(c, gin.H{"podcast_id": id, "subscribed": subscribed})
}

// ListSubscriptions handles GET /profile/subscriptions. Returns the full
// podcast entries for the subscribed IDs.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	u := h.store.User()
	subs := make([]models.Podcast, 0, len(u.Subscriptions))
	for _, id := range u.Subscriptions {
		if p, ok := h.catalog.Get(id); ok {
			subs = append(subs, *p)
		}
	}
	response.OK(c, subs)
}

// ListRecordings handles GET /profile/recordings.
func (h *Handler) ListRecordings(c *gin.Context) {
	response.OK(c, h.store.Recordings())
}

// DeleteRecording handles DELETE /recordings/:id.
func (h *Handler) DeleteRecording(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recording id")
		return
	}
	if !h.store.DeleteRecording(id) {
		response.NotFound(c, "recording not found")
		return
	}
	h.logger.Info("recording deleted", zap.String("recording_id", id.String()))
	response.NoContent(c)
}

// RecordingAudio handles GET /recordings/:id/audio: streams the stored clip
// bytes for playback.
func (h *Handler) RecordingAudio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recording id")
		return
	}
	buf, ok := h.store.Audio(id)
	if !ok {
		response.NotFound(c, "recording not found")
		return
	}
	c.Data(http.StatusOK, "audio/webm", buf)
}
