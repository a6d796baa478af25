package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/infrastructure/notifications"
)

// AuthConfig carries the tunables the auth flows need.
type AuthConfig struct {
	AccessTTL           time.Duration
	RememberTTL         time.Duration
	RequireVerification bool
	FrontendURL         string
}

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	prefRepo    domain.PreferenceRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	cfg         AuthConfig
	logger      *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	prefRepo domain.PreferenceRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	cfg AuthConfig,
	logger *slog.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		prefRepo:    prefRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
	}
}

// generateToken returns a 64-character hex token from 32 random bytes.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Register implements domain.AuthService. The verification email is best
// effort: a delivery failure is logged but never rolls back the account.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:                email,
		FullName:             input.FullName,
		Institution:          input.Institution,
		PasswordHash:         hashedPassword,
		IsActive:             true,
		NewsletterSubscribed: input.Newsletter,
		EmailVerified:        !s.cfg.RequireVerification,
	}

	if s.cfg.RequireVerification {
		token, err := generateToken()
		if err != nil {
			return nil, err
		}
		user.VerificationToken = token
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.prefRepo.CreateDefault(ctx, user.ID); err != nil {
		s.logger.Error("failed to create default preferences",
			slog.Uint64("user_id", uint64(user.ID)), slog.Any("error", err))
	}

	if s.cfg.RequireVerification {
		link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.FrontendURL, user.VerificationToken)
		msg := notifications.VerificationEmail(user.Email, user.FullName, link)
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("failed to send verification email",
				slog.String("email", user.Email), slog.Any("error", err))
		}
	}

	return &domain.RegisterResult{
		UserID:                    user.ID,
		EmailVerificationRequired: s.cfg.RequireVerification,
	}, nil
}

// Login implements domain.AuthService. An unknown email and a wrong
// password both fail with ErrInvalidCredentials so responses cannot be
// used to enumerate accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if s.cfg.RequireVerification && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	ttl := s.cfg.AccessTTL
	if meta.Remember {
		ttl = s.cfg.RememberTTL
	}

	sessionToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(ttl)
	session := &domain.Session{
		UserID:    user.ID,
		Token:     sessionToken,
		ExpiresAt: expiresAt,
		IsActive:  true,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.Sign(user.ID, user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login",
			slog.Uint64("user_id", uint64(user.ID)), slog.Any("error", err))
	}

	return &domain.AuthResult{
		User:         user,
		Token:        accessToken,
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout implements domain.AuthService. With a session token only that
// session is revoked; without one every session for the user is.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint, sessionToken string) error {
	if sessionToken != "" {
		return s.sessionRepo.InvalidateByToken(ctx, sessionToken)
	}
	return s.sessionRepo.InvalidateAllForUser(ctx, userID)
}

// ForgotPassword implements domain.AuthService. Unknown and inactive
// accounts return success without sending anything, matching the login
// enumeration posture. The reset email itself must be delivered.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(time.Hour)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, token)
	msg := notifications.PasswordResetEmail(user.Email, user.FullName, link)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// ResetPassword implements domain.AuthService. The repository clears the
// token in the same update that stores the hash, so each link is single
// use.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return domain.ErrResetTokenInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.ResetPassword(ctx, user.ID, hashedPassword)
}

// VerifyEmail implements domain.AuthService. Verifying an already
// verified account is a no-op. The welcome email is best effort.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrVerificationTokenInvalid
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	msg := notifications.WelcomeEmail(user.Email, user.FullName, s.cfg.FrontendURL)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send welcome email",
			slog.String("email", user.Email), slog.Any("error", err))
	}
	return nil
}

// Refresh implements domain.AuthService. A refreshed token gets a full
// new TTL.
func (s *AuthServiceImpl) Refresh(ctx context.Context, userID uint, email string) (string, time.Time, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if !user.IsActive {
		return "", time.Time{}, domain.ErrUserInactive
	}

	expiresAt := time.Now().Add(s.cfg.AccessTTL)
	token, err := s.tokenSvc.Sign(user.ID, user.Email, s.cfg.AccessTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
