package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
	StaticDir   string `yaml:"static_dir"`
	FrontendURL string `yaml:"frontend_url"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	Issuer      string `yaml:"issuer"`
	AccessTTL   string `yaml:"access_ttl"`
	RememberTTL string `yaml:"remember_ttl"`
}

type AuthConfig struct {
	BcryptCost           int    `yaml:"bcrypt_cost"`
	RequireVerification  bool   `yaml:"require_email_verification"`
	AdminEmails          string `yaml:"admin_emails"`
	RateLimitMaxAttempts int    `yaml:"rate_limit_max_attempts"`
	RateLimitWindow      string `yaml:"rate_limit_window"`
}

type MailConfig struct {
	PostmarkServerToken  string `yaml:"postmark_server_token"`
	PostmarkAccountToken string `yaml:"postmark_account_token"`
	FromEmail            string `yaml:"from_email"`
	FromName             string `yaml:"from_name"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Port        string
	Environment string
	StaticDir   string
	FrontendURL string

	DatabasePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret   string
	JWTIssuer   string
	AccessTTL   time.Duration
	RememberTTL time.Duration

	BcryptCost           int
	RequireVerification  bool
	AdminEmails          []string
	RateLimitMaxAttempts int
	RateLimitWindow      time.Duration

	PostmarkServerToken  string
	PostmarkAccountToken string
	FromEmail            string
	FromName             string
}

// IsDevelopment reports whether error detail may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

// Load resolves configuration from config/config.yml when present, with
// environment variables overriding every field. A missing config file is
// not an error; env-only deployments are supported.
func Load() (*Config, error) {
	file, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		file = &ConfigFile{}
	}

	accessTTL, err := parseTTL(env("JWT_EXPIRES_IN", file.JWT.AccessTTL), 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid access token TTL: %w", err)
	}
	rememberTTL, err := parseTTL(env("JWT_REMEMBER_EXPIRES_IN", file.JWT.RememberTTL), 30*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid remember-me TTL: %w", err)
	}
	rateWindow, err := parseTTL(env("RATE_LIMIT_WINDOW", file.Auth.RateLimitWindow), 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	secret := env("JWT_SECRET", file.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	port := file.App.Port
	if port == 0 {
		port = 3001
	}

	bcryptCost := file.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	maxAttempts := file.Auth.RateLimitMaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 5
	}

	return &Config{
		Port:        env("PORT", strconv.Itoa(port)),
		Environment: env("APP_ENV", orDefault(file.App.Environment, "development")),
		StaticDir:   env("STATIC_DIR", file.App.StaticDir),
		FrontendURL: env("FRONTEND_URL", orDefault(file.App.FrontendURL, "http://localhost:3001")),

		DatabasePath: env("DATABASE_PATH", orDefault(file.Database.Path, "database/research_hub.db")),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       envInt("REDIS_DB", file.Redis.DB),

		JWTSecret:   secret,
		JWTIssuer:   env("JWT_ISSUER", orDefault(file.JWT.Issuer, "research-hub")),
		AccessTTL:   accessTTL,
		RememberTTL: rememberTTL,

		BcryptCost:           envInt("BCRYPT_ROUNDS", bcryptCost),
		RequireVerification:  envBool("ENABLE_EMAIL_VERIFICATION", file.Auth.RequireVerification),
		AdminEmails:          splitList(env("ADMIN_EMAILS", file.Auth.AdminEmails)),
		RateLimitMaxAttempts: envInt("RATE_LIMIT_MAX_ATTEMPTS", maxAttempts),
		RateLimitWindow:      rateWindow,

		PostmarkServerToken:  env("POSTMARK_SERVER_TOKEN", file.Mail.PostmarkServerToken),
		PostmarkAccountToken: env("POSTMARK_ACCOUNT_TOKEN", file.Mail.PostmarkAccountToken),
		FromEmail:            env("FROM_EMAIL", file.Mail.FromEmail),
		FromName:             env("FROM_NAME", orDefault(file.Mail.FromName, "Research Hub")),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

func parseTTL(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
