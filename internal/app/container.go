package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/config"
	"github.com/keaton678/research-hub/internal/infrastructure/auth"
	"github.com/keaton678/research-hub/internal/infrastructure/database"
	"github.com/keaton678/research-hub/internal/infrastructure/notifications"
	"github.com/keaton678/research-hub/internal/infrastructure/repositories"
	"github.com/keaton678/research-hub/internal/services"
)

// Container holds all wired dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo       domain.UserRepository
	SessionRepo    domain.SessionRepository
	PreferenceRepo domain.PreferenceRepository
	ContentRepo    domain.ContentRepository
	FeedbackRepo   domain.FeedbackRepository
	AnalyticsRepo  domain.AnalyticsRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	RateLimiter *services.SlidingWindowLimiter

	AuthSvc      domain.AuthService
	UserSvc      *services.UserServiceImpl
	ContentSvc   *services.ContentServiceImpl
	FeedbackSvc  *services.FeedbackServiceImpl
	AnalyticsSvc *services.AnalyticsServiceImpl
}

// NewContainer creates and initializes all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DatabasePath)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

// initRedis is optional: without REDIS_ADDR the session cache is skipped
// and every token lookup goes to SQLite.
func (c *Container) initRedis() error {
	if c.Config.RedisAddr == "" {
		return nil
	}
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		c.Logger.Warn("redis unreachable, session cache disabled", slog.Any("error", err))
		return nil
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
	if c.RedisClient != nil {
		c.SessionRepo = repositories.NewCachedSessionRepository(c.SessionRepo, c.RedisClient)
	}
	c.PreferenceRepo = repositories.NewPreferenceRepository(c.DB)
	c.ContentRepo = repositories.NewContentRepository(c.DB)
	c.FeedbackRepo = repositories.NewFeedbackRepository(c.DB)
	c.AnalyticsRepo = repositories.NewAnalyticsRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer)
	c.RateLimiter = services.NewSlidingWindowLimiter(c.Config.RateLimitMaxAttempts, c.Config.RateLimitWindow)

	if c.Config.PostmarkServerToken != "" {
		mailer, err := notifications.NewPostmarkMailer(
			c.Config.PostmarkServerToken,
			c.Config.PostmarkAccountToken,
			c.Config.FromEmail,
			c.Config.FromName,
		)
		if err != nil {
			return err
		}
		c.Mailer = mailer
	} else {
		c.Mailer = notifications.NewLogMailer(c.Logger)
	}

	c.AuthSvc = services.NewAuthService(
		c.UserRepo, c.SessionRepo, c.PreferenceRepo,
		c.PasswordSvc, c.TokenSvc, c.Mailer,
		services.AuthConfig{
			AccessTTL:           c.Config.AccessTTL,
			RememberTTL:         c.Config.RememberTTL,
			RequireVerification: c.Config.RequireVerification,
			FrontendURL:         c.Config.FrontendURL,
		},
		c.Logger,
	)
	c.UserSvc = services.NewUserService(
		c.UserRepo, c.SessionRepo, c.PreferenceRepo, c.AnalyticsRepo, c.PasswordSvc, c.Logger)
	c.ContentSvc = services.NewContentService(c.ContentRepo, c.AnalyticsRepo, c.Logger)
	c.FeedbackSvc = services.NewFeedbackService(
		c.FeedbackRepo, c.UserRepo, c.Mailer, c.Config.AdminEmails, c.Logger)
	c.AnalyticsSvc = services.NewAnalyticsService(c.AnalyticsRepo, c.Logger)

	return nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
