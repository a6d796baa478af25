package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
	"github.com/keaton678/research-hub/internal/services"
)

// UserHandlers handles the profile, preferences and account surface. All
// routes sit behind the required gate.
type UserHandlers struct {
	userSvc *services.UserServiceImpl
}

// NewUserHandlers creates new user handlers.
func NewUserHandlers(userSvc *services.UserServiceImpl) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// UpdateProfileRequest represents a profile update.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Institution string `json:"institution" binding:"max=255"`
}

// UpdatePreferencesRequest represents a preferences update. Pointer
// fields distinguish "not sent" from zero values.
type UpdatePreferencesRequest struct {
	Theme               *string        `json:"theme" binding:"omitempty,oneof=dark light"`
	EmailNotifications  *bool          `json:"emailNotifications"`
	PreferredCategories []string       `json:"preferredCategories"`
	BookmarkedResources []string       `json:"bookmarkedResources"`
	CompletedGuides     []string       `json:"completedGuides"`
	ProgressData        map[string]any `json:"progressData"`
}

// DeleteAccountRequest represents an account deletion confirmation.
type DeleteAccountRequest struct {
	ConfirmEmail string `json:"confirmEmail" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// Profile handles GET /api/users/profile.
func (h *UserHandlers) Profile(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, err, "Failed to get user profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Sanitized()})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, req.FullName, req.Institution)
	if err != nil {
		internalError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user.Sanitized()})
}

// Preferences handles GET /api/users/preferences.
func (h *UserHandlers) Preferences(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	prefs, err := h.userSvc.Preferences(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err, "Failed to get preferences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": preferencesView(prefs)})
}

// UpdatePreferences handles PUT /api/users/preferences. Omitted fields
// keep their stored values.
func (h *UserHandlers) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	prefs, err := h.userSvc.Preferences(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err, "Failed to get preferences")
		return
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.PreferredCategories != nil {
		prefs.PreferredCategories = req.PreferredCategories
	}
	if req.BookmarkedResources != nil {
		prefs.BookmarkedResources = req.BookmarkedResources
	}
	if req.CompletedGuides != nil {
		prefs.CompletedGuides = req.CompletedGuides
	}
	if req.ProgressData != nil {
		prefs.ProgressData = req.ProgressData
	}

	if err := h.userSvc.UpdatePreferences(c.Request.Context(), prefs); err != nil {
		internalError(c, err, "Failed to update preferences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully", "preferences": preferencesView(prefs)})
}

// Export handles GET /api/users/export.
func (h *UserHandlers) Export(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	data, err := h.userSvc.Export(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err, "Failed to export user data")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="research-hub-export.json"`)
	c.JSON(http.StatusOK, data)
}

// DeleteAccount handles DELETE /api/users/account.
func (h *UserHandlers) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	err := h.userSvc.DeleteAccount(c.Request.Context(), userID, req.ConfirmEmail, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email or password confirmation does not match"})
			return
		}
		internalError(c, err, "Failed to delete account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated successfully"})
}

// Activity handles GET /api/users/activity.
func (h *UserHandlers) Activity(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	days := queryInt(c, "days", 30)
	summary, err := h.userSvc.Activity(c.Request.Context(), userID, days)
	if err != nil {
		internalError(c, err, "Failed to get activity summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": summary, "periodDays": days})
}

func preferencesView(prefs *domain.Preferences) gin.H {
	return gin.H{
		"theme":               prefs.Theme,
		"emailNotifications":  prefs.EmailNotifications,
		"preferredCategories": prefs.PreferredCategories,
		"bookmarkedResources": prefs.BookmarkedResources,
		"completedGuides":     prefs.CompletedGuides,
		"progressData":        prefs.ProgressData,
	}
}
