package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. All writes are
// single-row updates; ResetPassword clears the reset token in the same
// statement that stores the new hash.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	UpdateProfile(ctx context.Context, id uint, fullName, institution string) error
	UpdateLastLogin(ctx context.Context, id uint) error
	SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error
	ResetPassword(ctx context.Context, id uint, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
}

// SessionRepository defines session data access operations. FindByToken
// only returns sessions that are active and unexpired; invalidation flips
// the active flag and never deletes rows.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	InvalidateByToken(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID uint) error
	ListForUser(ctx context.Context, userID uint) ([]Session, error)
}

// PreferenceRepository defines per-user settings access.
type PreferenceRepository interface {
	CreateDefault(ctx context.Context, userID uint) error
	Find(ctx context.Context, userID uint) (*Preferences, error)
	Update(ctx context.Context, prefs *Preferences) error
}

// ContentRepository defines catalog access.
type ContentRepository interface {
	List(ctx context.Context, filter ContentFilter) (*ContentPage, error)
	FindBySlug(ctx context.Context, slug string) (*ContentItem, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) (*ContentPage, error)
	IncrementViewCount(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]CategorySummary, error)
	Search(ctx context.Context, query, category string, limit int) ([]SearchHit, error)
}

// FeedbackRepository defines feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]Feedback, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Stats(ctx context.Context, days int) (*FeedbackStats, error)
}

// AnalyticsRepository defines event capture and rollup queries.
type AnalyticsRepository interface {
	RecordPageView(ctx context.Context, pv *PageView) error
	RecordInteraction(ctx context.Context, ri *ResourceInteraction) error
	RecordSearch(ctx context.Context, sq *SearchQuery) error
	UserStats(ctx context.Context) (*UserStats, error)
	PopularContent(ctx context.Context, days int) ([]PopularItem, error)
	TopSearches(ctx context.Context, days int) ([]QueryCount, error)
	PageViewTrends(ctx context.Context, days int) ([]PageViewTrend, error)
	UserActivity(ctx context.Context, userID uint, days int) (*ActivitySummary, error)
	UserEventCounts(ctx context.Context, userID uint) (*UserEventCounts, error)
	ComputeDaily(ctx context.Context, date string) (*DailyAnalytics, error)
	SaveDaily(ctx context.Context, row *DailyAnalytics) error
}

// AuthService defines the authentication flows.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string, meta SessionMeta) (*AuthResult, error)
	Logout(ctx context.Context, userID uint, sessionToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	Refresh(ctx context.Context, userID uint, email string) (string, time.Time, error)
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Email       string
	FullName    string
	Password    string
	Institution string
	Newsletter  bool
}

// PasswordService defines password hashing. Verify returns false for any
// malformed digest rather than erroring.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies bearer tokens. Verify fails with
// ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
type TokenService interface {
	Sign(userID uint, email string, ttl time.Duration) (string, error)
	Verify(token string) (*AccessClaims, error)
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// RateLimiter guards a keyed operation with a sliding attempt window.
type RateLimiter interface {
	Check(key string) RateDecision
}
