package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
)

// RateLimitMiddleware throttles a route group per client IP and path.
// Denials carry a Retry-After header in seconds.
func RateLimitMiddleware(limiter domain.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		decision := limiter.Check(key)
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(decision.RetryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many attempts, please try again later",
				"retryAfter": decision.RetryAfter,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
