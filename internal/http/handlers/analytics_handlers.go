package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
	"github.com/keaton678/research-hub/internal/services"
)

// AnalyticsHandlers handles event capture and the stats surface.
type AnalyticsHandlers struct {
	analyticsSvc *services.AnalyticsServiceImpl
}

// NewAnalyticsHandlers creates new analytics handlers.
func NewAnalyticsHandlers(analyticsSvc *services.AnalyticsServiceImpl) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsSvc: analyticsSvc}
}

// TrackInteractionRequest represents an interaction event from the
// frontend.
type TrackInteractionRequest struct {
	ResourceCategory string         `json:"resourceCategory" binding:"required,max=100"`
	ResourceTitle    string         `json:"resourceTitle" binding:"required,max=255"`
	InteractionType  string         `json:"interactionType" binding:"required"`
	InteractionData  map[string]any `json:"interactionData"`
}

// TrackSearchRequest represents a search event from the frontend.
type TrackSearchRequest struct {
	Query         string `json:"query" binding:"required,max=255"`
	ResultsCount  int    `json:"resultsCount"`
	ClickedResult string `json:"clickedResult" binding:"max=255"`
}

// TrackInteraction handles POST /api/analytics/track.
func (h *AnalyticsHandlers) TrackInteraction(c *gin.Context) {
	var req TrackInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	ri := &domain.ResourceInteraction{
		UserID:           middleware.OptionalUserID(c),
		SessionID:        middleware.SessionID(c),
		ResourceCategory: req.ResourceCategory,
		ResourceTitle:    req.ResourceTitle,
		InteractionType:  req.InteractionType,
		InteractionData:  req.InteractionData,
		IPAddress:        c.ClientIP(),
	}

	if err := h.analyticsSvc.TrackInteraction(c.Request.Context(), ri); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err, "Failed to track interaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction tracked"})
}

// TrackSearch handles POST /api/analytics/search.
func (h *AnalyticsHandlers) TrackSearch(c *gin.Context) {
	var req TrackSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	sq := &domain.SearchQuery{
		UserID:        middleware.OptionalUserID(c),
		SessionID:     middleware.SessionID(c),
		Query:         req.Query,
		ResultsCount:  req.ResultsCount,
		ClickedResult: req.ClickedResult,
	}

	if err := h.analyticsSvc.TrackSearch(c.Request.Context(), sq); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err, "Failed to track search")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Search tracked"})
}

// Dashboard handles GET /api/analytics/dashboard (admin).
func (h *AnalyticsHandlers) Dashboard(c *gin.Context) {
	dashboard, err := h.analyticsSvc.Dashboard(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		internalError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Public handles GET /api/analytics/public.
func (h *AnalyticsHandlers) Public(c *gin.Context) {
	stats, err := h.analyticsSvc.Public(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to get public stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
