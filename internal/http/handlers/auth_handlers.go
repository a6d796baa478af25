package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
)

// AuthHandlers handles the authentication HTTP surface.
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100"`
	Institution string `json:"institution" binding:"max=255"`
	Newsletter  bool   `json:"newsletter"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// ForgotPasswordRequest represents a forgot-password request.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a reset-password request.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// VerifyEmailRequest represents an email verification request.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:       req.Email,
		FullName:    req.FullName,
		Password:    req.Password,
		Institution: req.Institution,
		Newsletter:  req.Newsletter,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		internalError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":                   "Account created successfully",
		"userId":                    result.UserID,
		"emailVerificationRequired": result.EmailVerificationRequired,
	})
}

// Login handles POST /api/auth/login. All credential failures map to 401
// with the same shape.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	meta := domain.SessionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Remember:  req.Remember,
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, meta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case errors.Is(err, domain.ErrUserInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		case errors.Is(err, domain.ErrEmailNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please verify your email address before logging in"})
		default:
			internalError(c, err, "Login failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        result.Token,
		"sessionToken": result.SessionToken,
		"expiresAt":    result.ExpiresAt,
		"user":         result.User.Sanitized(),
	})
}

// Logout handles POST /api/auth/logout. With an X-Session-Token only that
// session is revoked; without one every session of the caller is.
func (h *AuthHandlers) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	sessionToken := c.GetString(middleware.CtxSessionToken)
	if err := h.authSvc.Logout(c.Request.Context(), userID, sessionToken); err != nil {
		internalError(c, err, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// identical whether or not the account exists.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		internalError(c, err, "Failed to process password reset request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for that email, a password reset link has been sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		internalError(c, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domain.ErrVerificationTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification token"})
			return
		}
		internalError(c, err, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Refresh handles POST /api/auth/refresh. The caller is already
// authenticated by the required gate; the new token gets a full TTL.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	token, expiresAt, err := h.authSvc.Refresh(c.Request.Context(), userID, c.GetString(middleware.CtxUserEmail))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserInactive) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is no longer active"})
			return
		}
		internalError(c, err, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt})
}

// Me handles GET /api/auth/me.
func (h *AuthHandlers) Me(c *gin.Context) {
	v, ok := c.Get(middleware.CtxUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	user := v.(*domain.User)
	c.JSON(http.StatusOK, gin.H{"user": user.Sanitized()})
}
