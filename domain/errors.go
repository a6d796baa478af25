package domain

import "errors"

// Authentication errors. ErrInvalidCredentials covers both unknown-email
// and wrong-password so responses cannot be used for account enumeration.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrEmailNotVerified   = errors.New("email verification required")
)

// Token errors, distinguished so callers can branch on the rejection
// reason.
var (
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token has expired")
)

// Single-use token errors.
var (
	ErrResetTokenInvalid        = errors.New("invalid or expired reset token")
	ErrVerificationTokenInvalid = errors.New("invalid verification token")
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Resource errors.
var (
	ErrContentNotFound     = errors.New("content not found")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
)

// Mail delivery failure. Register treats it as best-effort; forgot-password
// and feedback notification propagate it to the caller.
var ErrMailDelivery = errors.New("failed to send email")

// ErrValidation marks input rejected beyond what binding tags can
// express. Handlers map it to 400.
var ErrValidation = errors.New("validation failed")
