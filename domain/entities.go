package domain

import "time"

// User is the identity record backing every auth flow. Email is unique and
// stored lowercased; PasswordHash never leaves the repository boundary
// except through this struct, and handlers must respond with Sanitized().
type User struct {
	ID                   uint
	Email                string
	FullName             string
	Institution          string
	PasswordHash         string
	EmailVerified        bool
	IsActive             bool
	NewsletterSubscribed bool
	VerificationToken    string
	ResetToken           string
	ResetTokenExpires    *time.Time
	LastLoginAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// UserView is the client-safe projection of a User.
type UserView struct {
	ID                   uint       `json:"id"`
	Email                string     `json:"email"`
	FullName             string     `json:"fullName"`
	Institution          string     `json:"institution,omitempty"`
	EmailVerified        bool       `json:"emailVerified"`
	NewsletterSubscribed bool       `json:"newsletterSubscribed"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastLoginAt          *time.Time `json:"lastLogin,omitempty"`
}

// Sanitized strips credentials and tokens from the user record.
func (u *User) Sanitized() *UserView {
	return &UserView{
		ID:                   u.ID,
		Email:                u.Email,
		FullName:             u.FullName,
		Institution:          u.Institution,
		EmailVerified:        u.EmailVerified,
		NewsletterSubscribed: u.NewsletterSubscribed,
		CreatedAt:            u.CreatedAt,
		LastLoginAt:          u.LastLoginAt,
	}
}

// Session is one issued session artifact. Logout flips IsActive; rows are
// never deleted so the login history stays auditable.
type Session struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	IsActive  bool
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Valid reports whether the session can authenticate a request at t.
func (s *Session) Valid(t time.Time) bool {
	return s.IsActive && t.Before(s.ExpiresAt)
}

// AccessClaims is the transient identity decoded from a bearer token.
// Created on sign, validated per-request, never persisted.
type AccessClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RegisterResult is returned by a successful registration.
type RegisterResult struct {
	UserID                    uint
	EmailVerificationRequired bool
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	User         *User
	Token        string
	SessionToken string
	ExpiresAt    time.Time
}

// SessionMeta carries request metadata recorded on the session row.
type SessionMeta struct {
	IPAddress string
	UserAgent string
	Remember  bool
}

// ContentItem is a published guide or resource in the catalog.
type ContentItem struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Body        string     `json:"content"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	ViewCount   int64      `json:"viewCount"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ContentFilter narrows catalog listings.
type ContentFilter struct {
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// ContentPage is a paginated catalog listing.
type ContentPage struct {
	Items  []ContentItem
	Total  int64
	Limit  int
	Offset int
}

// HasMore reports whether another page exists after this one.
func (p *ContentPage) HasMore() bool {
	return int64(p.Offset+p.Limit) < p.Total
}

// CategorySummary describes one catalog category.
type CategorySummary struct {
	Category    string    `json:"category"`
	Count       int64     `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// SearchHit is a content item with its relevance score. Title matches
// score 10, description matches 5, body matches 1.
type SearchHit struct {
	Item      ContentItem
	Relevance int
}

// Preferences holds per-user settings. The list and map fields are stored
// as JSON text columns.
type Preferences struct {
	UserID              uint
	Theme               string
	EmailNotifications  bool
	PreferredCategories []string
	BookmarkedResources []string
	CompletedGuides     []string
	ProgressData        map[string]any
}

// DefaultPreferences returns the settings a fresh account starts with.
func DefaultPreferences(userID uint) *Preferences {
	return &Preferences{
		UserID:              userID,
		Theme:               "dark",
		EmailNotifications:  true,
		PreferredCategories: []string{},
		BookmarkedResources: []string{},
		CompletedGuides:     []string{},
		ProgressData:        map[string]any{},
	}
}

// Feedback is a submitted feedback message. UserID is nil for anonymous
// submissions, which must carry their own email and name.
type Feedback struct {
	ID          uint
	UserID      *uint
	Email       string
	Name        string
	Subject     string
	Message     string
	Type        string
	Status      string
	RespondedAt *time.Time
	CreatedAt   time.Time
}

// FeedbackFilter narrows admin feedback listings.
type FeedbackFilter struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// FeedbackStats is the admin overview of feedback volume.
type FeedbackStats struct {
	Total      int64        `json:"total"`
	New        int64        `json:"new"`
	InProgress int64        `json:"inProgress"`
	Resolved   int64        `json:"resolved"`
	Closed     int64        `json:"closed"`
	Recent     int64        `json:"recent"`
	ByType     []TypeCount  `json:"byType"`
	Daily      []DailyCount `json:"daily"`
}

// TypeCount pairs a label with an occurrence count.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// DailyCount pairs a calendar date with an occurrence count.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Email is a message handed to the Mailer.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Tag     string
}

// RateDecision is the outcome of a rate-limit check. RetryAfter is in
// seconds and only meaningful when Allowed is false.
type RateDecision struct {
	Allowed    bool
	RetryAfter int
}

// Feedback statuses and types accepted by the API.
var (
	FeedbackStatuses = []string{"new", "in_progress", "resolved", "closed"}
	FeedbackTypes    = []string{"general", "bug", "feature_request", "content_suggestion"}
)
