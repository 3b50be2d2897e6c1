package indexer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"addonhub/internal/addons"
	synchub "addonhub/internal/sync"
)

// Handler exposes the devhub reindex action: rebuild one add-on's search
// document on demand and notify sync listeners.
type Handler struct {
	Indexer *Indexer
	Addons  *addons.Repo
	Hub     *synchub.Hub
}

func NewHandler(ix *Indexer, addonRepo *addons.Repo, hub *synchub.Hub) *Handler {
	return &Handler{Indexer: ix, Addons: addonRepo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/addons/:slug/reindex", h.reindex)
}

func (h *Handler) reindex(c *gin.Context) {
	a, err := h.Addons.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.Indexer.ReindexAddon(c.Request.Context(), a.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}

	// read the document back so the response confirms what the index holds
	stored, err := h.Indexer.Index.Get(c.Request.Context(), a.ID)
	if err != nil || stored == nil || stored.Slug == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(synchub.IndexedEvent(a.ID, a.Slug))
	}

	c.JSON(http.StatusOK, gin.H{"status": "indexed", "addon_id": a.ID, "slug": *stored.Slug})
}
