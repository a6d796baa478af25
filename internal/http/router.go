package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/handlers"
	"github.com/keaton678/research-hub/internal/http/middleware"
)

// RouterDeps bundles everything BuildRouter wires together.
type RouterDeps struct {
	Auth      *handlers.AuthHandlers
	Users     *handlers.UserHandlers
	Content   *handlers.ContentHandlers
	Feedback  *handlers.FeedbackHandlers
	Analytics *handlers.AnalyticsHandlers

	AuthMW        *middleware.AuthMW
	RateLimiter   domain.RateLimiter
	AnalyticsRepo domain.AnalyticsRepository
	Logger        *slog.Logger
	StaticDir     string
}

// BuildRouter assembles the full route table.
func BuildRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(d.AuthMW.Optional())
	r.Use(middleware.PageViewMiddleware(d.AnalyticsRepo, d.Logger))

	r.GET("/api/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	throttle := middleware.RateLimitMiddleware(d.RateLimiter)

	auth := r.Group("/api/auth")
	auth.POST("/register", throttle, d.Auth.Register)
	auth.POST("/login", throttle, d.Auth.Login)
	auth.POST("/forgot-password", throttle, d.Auth.ForgotPassword)
	auth.POST("/reset-password", throttle, d.Auth.ResetPassword)
	auth.POST("/verify-email", d.Auth.VerifyEmail)
	auth.POST("/logout", d.AuthMW.Required(), d.AuthMW.Session(), d.Auth.Logout)
	auth.POST("/refresh", d.AuthMW.Required(), d.Auth.Refresh)
	auth.GET("/me", d.AuthMW.Required(), d.Auth.Me)

	users := r.Group("/api/users").Use(d.AuthMW.Required())
	users.GET("/profile", d.Users.Profile)
	users.PUT("/profile", d.Users.UpdateProfile)
	users.GET("/preferences", d.Users.Preferences)
	users.PUT("/preferences", d.Users.UpdatePreferences)
	users.GET("/export", d.Users.Export)
	users.DELETE("/account", d.Users.DeleteAccount)
	users.GET("/activity", d.Users.Activity)

	content := r.Group("/api/content")
	content.GET("", d.Content.List)
	content.GET("/search", d.Content.Search)
	content.GET("/meta/categories", d.Content.Categories)
	content.GET("/category/:category", d.Content.ByCategory)
	content.GET("/:slug", d.Content.BySlug)

	feedback := r.Group("/api/feedback")
	feedback.POST("", d.Feedback.Submit)
	feedback.GET("", d.AuthMW.Required(), d.AuthMW.Admin(), d.Feedback.List)
	feedback.GET("/stats", d.AuthMW.Required(), d.AuthMW.Admin(), d.Feedback.Stats)
	feedback.PUT("/:id/status", d.AuthMW.Required(), d.AuthMW.Admin(), d.Feedback.UpdateStatus)

	analytics := r.Group("/api/analytics")
	analytics.POST("/track", d.Analytics.TrackInteraction)
	analytics.POST("/search", d.Analytics.TrackSearch)
	analytics.GET("/public", d.Analytics.Public)
	analytics.GET("/dashboard", d.AuthMW.Required(), d.AuthMW.Admin(), d.Analytics.Dashboard)

	if d.StaticDir != "" {
		fs := http.FileServer(http.Dir(d.StaticDir))
		r.NoRoute(gin.WrapH(fs))
	}

	return r
}
