package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
	"github.com/keaton678/research-hub/internal/services"
)

// ContentHandlers handles the catalog surface. All routes sit behind the
// optional gate so signed-in readers get interactions recorded.
type ContentHandlers struct {
	contentSvc *services.ContentServiceImpl
}

// NewContentHandlers creates new content handlers.
func NewContentHandlers(contentSvc *services.ContentServiceImpl) *ContentHandlers {
	return &ContentHandlers{contentSvc: contentSvc}
}

// List handles GET /api/content.
func (h *ContentHandlers) List(c *gin.Context) {
	filter := domain.ContentFilter{
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit", 50),
		Offset:   queryInt(c, "offset", 0),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}

	page, err := h.contentSvc.List(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err, "Failed to list content")
		return
	}
	c.JSON(http.StatusOK, contentPageView(page))
}

// BySlug handles GET /api/content/:slug.
func (h *ContentHandlers) BySlug(c *gin.Context) {
	item, err := h.contentSvc.BySlug(c.Request.Context(), c.Param("slug"),
		middleware.OptionalUserID(c), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		internalError(c, err, "Failed to get content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

// ByCategory handles GET /api/content/category/:category.
func (h *ContentHandlers) ByCategory(c *gin.Context) {
	page, err := h.contentSvc.ByCategory(c.Request.Context(), c.Param("category"),
		queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		internalError(c, err, "Failed to list content")
		return
	}
	c.JSON(http.StatusOK, contentPageView(page))
}

// Categories handles GET /api/content/meta/categories.
func (h *ContentHandlers) Categories(c *gin.Context) {
	summaries, err := h.contentSvc.Categories(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": summaries})
}

// Search handles GET /api/content/search.
func (h *ContentHandlers) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	hits, err := h.contentSvc.Search(c.Request.Context(), query, c.Query("category"),
		queryInt(c, "limit", 20), middleware.OptionalUserID(c), middleware.SessionID(c))
	if err != nil {
		internalError(c, err, "Search failed")
		return
	}

	results := make([]gin.H, 0, len(hits))
	for i := range hits {
		results = append(results, gin.H{
			"content":   hits[i].Item,
			"relevance": hits[i].Relevance,
		})
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results, "count": len(results)})
}

func contentPageView(page *domain.ContentPage) gin.H {
	return gin.H{
		"content": page.Items,
		"pagination": gin.H{
			"total":   page.Total,
			"limit":   page.Limit,
			"offset":  page.Offset,
			"hasMore": page.HasMore(),
		},
	}
}
