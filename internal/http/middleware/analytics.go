package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/keaton678/research-hub/domain"
)

var (
	tabletUA = regexp.MustCompile(`tablet|ipad|playbook|silk`)
	mobileUA = regexp.MustCompile(`mobile|iphone|ipod|android|blackberry|opera mini|windows ce|palm|smartphone|iemobile`)
)

// DeviceType classifies a User-Agent as tablet, mobile, desktop or
// unknown.
func DeviceType(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := strings.ToLower(userAgent)
	if tabletUA.MatchString(ua) {
		return "tablet"
	}
	if mobileUA.MatchString(ua) {
		return "mobile"
	}
	return "desktop"
}

// SessionID resolves the analytics correlation ID for a request: signed-in
// users get a stable per-user ID, anonymous visitors reuse the
// X-Session-ID they were handed or get a fresh one.
func SessionID(c *gin.Context) string {
	if id, ok := UserID(c); ok {
		return fmt.Sprintf("user_%d", id)
	}
	if sid := c.GetHeader("X-Session-ID"); sid != "" {
		return sid
	}
	return uuid.NewString()
}

// PageViewMiddleware records page loads for non-API GET requests. Paths
// with a file extension are assets, not pages. The resolved session ID is
// echoed back in X-Session-ID so the frontend can keep it.
func PageViewMiddleware(analyticsRepo domain.AnalyticsRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || strings.HasPrefix(path, "/api/") || strings.Contains(path, ".") {
			c.Next()
			return
		}

		sessionID := SessionID(c)
		c.Set(CtxSessionID, sessionID)
		c.Header("X-Session-ID", sessionID)

		pv := &domain.PageView{
			UserID:     OptionalUserID(c),
			SessionID:  sessionID,
			PageURL:    c.Request.URL.RequestURI(),
			Referrer:   c.GetHeader("Referer"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			DeviceType: DeviceType(c.GetHeader("User-Agent")),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := analyticsRepo.RecordPageView(ctx, pv); err != nil {
				logger.Warn("failed to track page view",
					slog.String("path", pv.PageURL), slog.Any("error", err))
			}
		}()

		c.Next()
	}
}
