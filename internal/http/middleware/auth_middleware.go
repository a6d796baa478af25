package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
)

// Context keys set by the auth middleware.
const (
	CtxUserID       = "user_id"
	CtxUserEmail    = "user_email"
	CtxUser         = "user"
	CtxSessionToken = "session_token"
	CtxSessionID    = "session_id"
)

// Machine-readable 401 reasons.
const (
	ReasonMissing              = "missing"
	ReasonMalformed            = "malformed"
	ReasonExpired              = "expired"
	ReasonUserInactive         = "userInactive"
	ReasonVerificationRequired = "verificationRequired"
)

func unauthorized(c *gin.Context, reason, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message, "reason": reason})
	c.Abort()
}

// resolveBearer verifies the Authorization header and loads the user it
// names. A non-empty reason means the request must not be treated as
// authenticated.
func resolveBearer(c *gin.Context, tokenSvc domain.TokenService, userRepo domain.UserRepository, requireVerified bool) (*domain.User, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, ReasonMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ReasonMalformed
	}

	claims, err := tokenSvc.Verify(parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, ReasonExpired
		}
		return nil, ReasonMalformed
	}

	user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil || !user.IsActive {
		return nil, ReasonUserInactive
	}
	if requireVerified && !user.EmailVerified {
		return nil, ReasonVerificationRequired
	}
	return user, ""
}

// sessionTokenFrom reads the opaque session token from the
// X-Session-Token header, falling back to its cookie equivalent.
func sessionTokenFrom(c *gin.Context) string {
	if token := c.GetHeader("X-Session-Token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie("session_token"); err == nil {
		return cookie
	}
	return ""
}

// resolveSession resolves a session token against the session store and
// loads the user the session belongs to.
func resolveSession(c *gin.Context, sessionRepo domain.SessionRepository, userRepo domain.UserRepository, requireVerified bool) (*domain.User, *domain.Session, string) {
	token := sessionTokenFrom(c)
	if token == "" {
		return nil, nil, ReasonMissing
	}

	session, err := sessionRepo.FindByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, nil, ReasonExpired
		}
		return nil, nil, ReasonMalformed
	}

	user, err := userRepo.FindByID(c.Request.Context(), session.UserID)
	if err != nil || !user.IsActive {
		return nil, nil, ReasonUserInactive
	}
	if requireVerified && !user.EmailVerified {
		return nil, nil, ReasonVerificationRequired
	}
	return user, session, ""
}

// resolveIdentity accepts either credential scheme. A bearer token,
// when presented, is authoritative; the session token is consulted only
// when the Authorization header is absent.
func resolveIdentity(c *gin.Context, tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository, requireVerified bool) (*domain.User, string) {
	user, reason := resolveBearer(c, tokenSvc, userRepo, requireVerified)
	if reason != ReasonMissing {
		return user, reason
	}

	user, session, reason := resolveSession(c, sessionRepo, userRepo, requireVerified)
	if reason == "" {
		c.Set(CtxSessionToken, session.Token)
		c.Set(CtxSessionID, session.ID)
	}
	return user, reason
}

func attachUser(c *gin.Context, user *domain.User) {
	c.Set(CtxUserID, user.ID)
	c.Set(CtxUserEmail, user.Email)
	c.Set(CtxUser, user)
}

// RequireAuthMiddleware rejects requests that carry neither a valid
// bearer token nor a valid session token. Each rejection carries a
// machine-distinguishable reason.
func RequireAuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository, requireVerified bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, reason := resolveIdentity(c, tokenSvc, sessionRepo, userRepo, requireVerified)
		switch reason {
		case "":
			attachUser(c, user)
			c.Next()
		case ReasonMissing:
			unauthorized(c, reason, "Authentication required")
		case ReasonExpired:
			unauthorized(c, reason, "Token expired")
		case ReasonUserInactive:
			unauthorized(c, reason, "Account is deactivated")
		case ReasonVerificationRequired:
			unauthorized(c, reason, "Email verification required")
		default:
			unauthorized(c, ReasonMalformed, "Invalid token")
		}
	}
}

// OptionalAuthMiddleware attaches identity when a valid bearer or
// session token is presented and proceeds anonymously otherwise. It
// never rejects.
func OptionalAuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository, requireVerified bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, reason := resolveIdentity(c, tokenSvc, sessionRepo, userRepo, requireVerified); reason == "" {
			attachUser(c, user)
		}
		c.Next()
	}
}

// AdminMiddleware composes on top of RequireAuthMiddleware and denies
// identities whose email is not on the allow-list.
func AdminMiddleware(adminEmails []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(email)] = true
	}
	return func(c *gin.Context) {
		email := c.GetString(CtxUserEmail)
		if email == "" || !allowed[strings.ToLower(email)] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionTokenMiddleware exposes the raw session token to downstream
// handlers without validating it. Logout uses it so a bearer-
// authenticated request can still name the session it wants revoked.
func SessionTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionTokenFrom(c); token != "" {
			c.Set(CtxSessionToken, token)
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from the context, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// OptionalUserID returns a pointer to the authenticated user ID, or nil
// for anonymous requests.
func OptionalUserID(c *gin.Context) *uint {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}
