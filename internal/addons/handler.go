package addons

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"addonhub/internal/api"
	"addonhub/internal/search"
)

type Handler struct {
	Repo   *Repo
	Search *search.Repo
	Tags   TagStore
	URLs   api.URLBuilder
}

func NewHandler(repo *Repo, searchRepo *search.Repo, tags TagStore, urls api.URLBuilder) *Handler {
	return &Handler{Repo: repo, Search: searchRepo, Tags: tags, URLs: urls}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)                 // GET /addons/search
	rg.GET("/:slug", h.get)                     // GET /addons/:slug
	rg.GET("/:slug/versions/:id", h.getVersion) // GET /addons/:slug/versions/:id
}

// serializer builds one per request so the resolution locale is
// request-scoped, never global.
func (h *Handler) serializer(c *gin.Context) *Serializer {
	return NewSerializer(h.URLs, c.Query("lang"), h.Tags)
}

func (h *Handler) get(c *gin.Context) {
	a, err := h.Repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	doc, err := h.serializer(c).Addon(c.Request.Context(), a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "serialize failed"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) getVersion(c *gin.Context) {
	versionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version id"})
		return
	}

	v, defaultLocale, err := h.Repo.GetVersion(c.Request.Context(), c.Param("slug"), versionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	doc, err := h.serializer(c).Version(v, defaultLocale)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "serialize failed"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// search serves the reconstructed path: raw index documents rebuilt into
// views and pushed through the same serializer as the live path.
func (h *Handler) search(c *gin.Context) {
	q := search.Query{
		Q:      strings.TrimSpace(c.Query("q")),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}

	docs, err := h.Search.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	s := h.serializer(c)
	results := make([]*AddonDoc, 0, len(docs))
	for _, raw := range docs {
		a, err := search.Reconstruct(raw)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reconstruct failed"})
			return
		}
		doc, err := s.Addon(c.Request.Context(), a)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "serialize failed"})
			return
		}
		results = append(results, doc)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"limit":   q.Limit,
		"offset":  q.Offset,
		"results": results,
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
