package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
)

// AuthMW bundles the dependencies of the request gates.
type AuthMW struct {
	tokenSvc        domain.TokenService
	sessionRepo     domain.SessionRepository
	userRepo        domain.UserRepository
	adminEmails     []string
	requireVerified bool
}

// NewAuthMW creates the auth middleware wrapper.
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository, adminEmails []string, requireVerified bool) *AuthMW {
	return &AuthMW{
		tokenSvc:        tokenSvc,
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		adminEmails:     adminEmails,
		requireVerified: requireVerified,
	}
}

// Required returns the required-auth gate.
func (mw *AuthMW) Required() gin.HandlerFunc {
	return RequireAuthMiddleware(mw.tokenSvc, mw.sessionRepo, mw.userRepo, mw.requireVerified)
}

// Optional returns the optional-auth gate.
func (mw *AuthMW) Optional() gin.HandlerFunc {
	return OptionalAuthMiddleware(mw.tokenSvc, mw.sessionRepo, mw.userRepo, mw.requireVerified)
}

// Admin returns the allow-list gate. Compose it after Required.
func (mw *AuthMW) Admin() gin.HandlerFunc {
	return AdminMiddleware(mw.adminEmails)
}

// Session returns the session-token extractor.
func (mw *AuthMW) Session() gin.HandlerFunc {
	return SessionTokenMiddleware()
}
