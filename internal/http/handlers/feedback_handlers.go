package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
	"github.com/keaton678/research-hub/internal/services"
)

// FeedbackHandlers handles feedback submission and the admin review
// surface.
type FeedbackHandlers struct {
	feedbackSvc *services.FeedbackServiceImpl
}

// NewFeedbackHandlers creates new feedback handlers.
func NewFeedbackHandlers(feedbackSvc *services.FeedbackServiceImpl) *FeedbackHandlers {
	return &FeedbackHandlers{feedbackSvc: feedbackSvc}
}

// SubmitFeedbackRequest represents a feedback submission. Email and name
// are required only for anonymous callers; the service enforces that.
type SubmitFeedbackRequest struct {
	Subject string `json:"subject" binding:"required,min=3,max=255"`
	Message string `json:"message" binding:"required,min=10"`
	Type    string `json:"type" binding:"omitempty,oneof=general bug feature_request content_suggestion"`
	Email   string `json:"email" binding:"omitempty,email"`
	Name    string `json:"name" binding:"omitempty,max=100"`
}

// UpdateStatusRequest represents a feedback status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress resolved closed"`
}

// Submit handles POST /api/feedback. A notification delivery failure is
// reported to the caller together with the stored feedback ID.
func (h *FeedbackHandlers) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	fb := &domain.Feedback{
		UserID:  middleware.OptionalUserID(c),
		Email:   req.Email,
		Name:    req.Name,
		Subject: req.Subject,
		Message: req.Message,
		Type:    req.Type,
	}

	if err := h.feedbackSvc.Submit(c.Request.Context(), fb); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrMailDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Feedback was saved but the notification could not be sent",
				"feedbackId": fb.ID,
			})
		default:
			internalError(c, err, "Failed to submit feedback")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Thank you for your feedback",
		"feedbackId": fb.ID,
	})
}

// List handles GET /api/feedback (admin).
func (h *FeedbackHandlers) List(c *gin.Context) {
	filter := domain.FeedbackFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	rows, total, err := h.feedbackSvc.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err, "Failed to list feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": rows,
		"pagination": gin.H{
			"total":  total,
			"limit":  filter.Limit,
			"offset": filter.Offset,
		},
	})
}

// UpdateStatus handles PUT /api/feedback/:id/status (admin).
func (h *FeedbackHandlers) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if err := h.feedbackSvc.UpdateStatus(c.Request.Context(), uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrFeedbackNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, err, "Failed to update feedback status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// Stats handles GET /api/feedback/stats (admin).
func (h *FeedbackHandlers) Stats(c *gin.Context) {
	days := queryInt(c, "days", 30)
	stats, err := h.feedbackSvc.Stats(c.Request.Context(), days)
	if err != nil {
		internalError(c, err, "Failed to get feedback stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
