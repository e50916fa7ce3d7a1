package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/podhaven/backend/pkg/response"
)

// Handler handles catalog HTTP endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a catalog handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /podcasts. Query ?q= filters by title/topic/host.
func (h *Handler) List(c *gin.Context) {
	response.OK(c, h.store.Search(c.Query("q")))
}

// GetByID handles GET /podcasts/:id.
func (h *Handler) GetByID(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "podcast not found")
		return
	}
	response.OK(c, p)
}

// ListEpisodes handles GET /podcasts/:id/episodes.
func (h *Handler) ListEpisodes(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "podcast not found")
		return
	}
	response.OK(c, p.Episodes)
}
