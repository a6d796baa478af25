package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keaton678/research-hub/internal/config"
	httpx "github.com/keaton678/research-hub/internal/http"
	"github.com/keaton678/research-hub/internal/http/handlers"
	"github.com/keaton678/research-hub/internal/http/middleware"
)

// Run wires the application and serves until SIGINT/SIGTERM.
func Run(cfg *config.Config) error {
	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.Configure(cfg.IsDevelopment(), c.Logger)

	authMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo, c.UserRepo, cfg.AdminEmails, cfg.RequireVerification)
	router := httpx.BuildRouter(httpx.RouterDeps{
		Auth:          handlers.NewAuthHandlers(c.AuthSvc),
		Users:         handlers.NewUserHandlers(c.UserSvc),
		Content:       handlers.NewContentHandlers(c.ContentSvc),
		Feedback:      handlers.NewFeedbackHandlers(c.FeedbackSvc),
		Analytics:     handlers.NewAnalyticsHandlers(c.AnalyticsSvc),
		AuthMW:        authMW,
		RateLimiter:   c.RateLimiter,
		AnalyticsRepo: c.AnalyticsRepo,
		Logger:        c.Logger,
		StaticDir:     cfg.StaticDir,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runMaintenance(ctx, c)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runMaintenance drives the rate-limiter sweep and the daily analytics
// rollup. The rollup runs hourly and always covers the previous day, so
// restarts never leave a gap larger than an hour.
func runMaintenance(ctx context.Context, c *Container) {
	sweep := time.NewTicker(5 * time.Minute)
	defer sweep.Stop()
	aggregate := time.NewTicker(time.Hour)
	defer aggregate.Stop()

	aggregateYesterday(ctx, c)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			c.RateLimiter.Sweep()
		case <-aggregate.C:
			aggregateYesterday(ctx, c)
		}
	}
}

func aggregateYesterday(ctx context.Context, c *Container) {
	date := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if err := c.AnalyticsSvc.AggregateDaily(ctx, date); err != nil {
		c.Logger.Error("daily aggregation failed",
			slog.String("date", date), slog.Any("error", err))
	}
}
