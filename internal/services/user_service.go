package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/keaton678/research-hub/domain"
)

// ExportData is the GDPR export payload: everything the platform stores
// about one account, with raw analytics rows reduced to counts.
type ExportData struct {
	ExportedAt  time.Time               `json:"exportedAt"`
	User        *domain.UserView        `json:"user"`
	Preferences *domain.Preferences     `json:"preferences"`
	Sessions    []domain.Session        `json:"sessions"`
	Analytics   *domain.UserEventCounts `json:"analytics"`
}

// UserServiceImpl handles profile, preferences and account lifecycle.
type UserServiceImpl struct {
	userRepo      domain.UserRepository
	sessionRepo   domain.SessionRepository
	prefRepo      domain.PreferenceRepository
	analyticsRepo domain.AnalyticsRepository
	passwordSvc   domain.PasswordService
	logger        *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	prefRepo domain.PreferenceRepository,
	analyticsRepo domain.AnalyticsRepository,
	passwordSvc domain.PasswordService,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		prefRepo:      prefRepo,
		analyticsRepo: analyticsRepo,
		passwordSvc:   passwordSvc,
		logger:        logger,
	}
}

// Profile returns the user record for the given ID.
func (s *UserServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile updates the mutable profile fields. Blank inputs keep the
// stored value.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint, fullName, institution string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName == "" {
		fullName = user.FullName
	}
	if institution == "" {
		institution = user.Institution
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, fullName, institution); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.FullName = fullName
	user.Institution = institution
	return user, nil
}

// Preferences returns the user's settings, creating the defaults for
// accounts that predate the preferences table.
func (s *UserServiceImpl) Preferences(ctx context.Context, userID uint) (*domain.Preferences, error) {
	prefs, err := s.prefRepo.Find(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, err
	}
	if err := s.prefRepo.CreateDefault(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to create default preferences: %w", err)
	}
	return s.prefRepo.Find(ctx, userID)
}

// UpdatePreferences stores the given settings for the user.
func (s *UserServiceImpl) UpdatePreferences(ctx context.Context, prefs *domain.Preferences) error {
	if _, err := s.Preferences(ctx, prefs.UserID); err != nil {
		return err
	}
	return s.prefRepo.Update(ctx, prefs)
}

// Export assembles the GDPR data export for the user.
func (s *UserServiceImpl) Export(ctx context.Context, userID uint) (*ExportData, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].Token = ""
	}

	counts, err := s.analyticsRepo.UserEventCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		ExportedAt:  time.Now(),
		User:        user.Sanitized(),
		Preferences: prefs,
		Sessions:    sessions,
		Analytics:   counts,
	}, nil
}

// DeleteAccount soft-deletes the account after the caller re-confirms
// both email and password, then revokes every session.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uint, confirmEmail, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(confirmEmail), user.Email) {
		return domain.ErrInvalidCredentials
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return domain.ErrInvalidCredentials
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if err := s.sessionRepo.InvalidateAllForUser(ctx, userID); err != nil {
		s.logger.Error("failed to revoke sessions on account deletion",
			slog.Uint64("user_id", uint64(userID)), slog.Any("error", err))
	}
	return nil
}

// Activity returns the user's recent activity summary.
func (s *UserServiceImpl) Activity(ctx context.Context, userID uint, days int) (*domain.ActivitySummary, error) {
	if days <= 0 {
		days = 30
	}
	return s.analyticsRepo.UserActivity(ctx, userID, days)
}
