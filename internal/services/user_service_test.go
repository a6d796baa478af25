package services

import (
	"context"
	"errors"
	"testing"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/mocks"
)

func newTestUserService(
	users *mocks.MockUserRepository,
	sessions *mocks.MockSessionRepository,
	prefs *mocks.MockPreferenceRepository,
	analytics *mocks.MockAnalyticsRepository,
) *UserServiceImpl {
	return NewUserService(users, sessions, prefs, analytics,
		&mocks.MockPasswordService{}, testLogger())
}

func TestUserService_UpdateProfile_BlankKeepsStored(t *testing.T) {
	users := mocks.NewMockUserRepository()
	users.FindByIDFunc = func(context.Context, uint) (*domain.User, error) {
		return &domain.User{ID: 7, FullName: "Old Name", Institution: "Old Institution", IsActive: true}, nil
	}
	var gotName, gotInstitution string
	users.UpdateProfileFunc = func(_ context.Context, _ uint, fullName, institution string) error {
		gotName, gotInstitution = fullName, institution
		return nil
	}
	svc := newTestUserService(users, mocks.NewMockSessionRepository(),
		&mocks.MockPreferenceRepository{}, &mocks.MockAnalyticsRepository{})

	user, err := svc.UpdateProfile(context.Background(), 7, "New Name", "")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if gotName != "New Name" || gotInstitution != "Old Institution" {
		t.Errorf("stored = (%q, %q), blank must keep the old value", gotName, gotInstitution)
	}
	if user.FullName != "New Name" {
		t.Errorf("returned FullName = %q", user.FullName)
	}
}

func TestUserService_Preferences_BackfillsDefaults(t *testing.T) {
	calls := 0
	created := false
	prefs := &mocks.MockPreferenceRepository{
		FindFunc: func(_ context.Context, userID uint) (*domain.Preferences, error) {
			calls++
			if !created {
				return nil, domain.ErrPreferencesNotFound
			}
			return domain.DefaultPreferences(userID), nil
		},
		CreateDefaultFunc: func(context.Context, uint) error {
			created = true
			return nil
		},
	}
	svc := newTestUserService(mocks.NewMockUserRepository(),
		mocks.NewMockSessionRepository(), prefs, &mocks.MockAnalyticsRepository{})

	got, err := svc.Preferences(context.Background(), 7)
	if err != nil {
		t.Fatalf("Preferences() error = %v", err)
	}
	if !created {
		t.Error("defaults never created for a missing row")
	}
	if got.Theme != "dark" {
		t.Errorf("Theme = %q, want the default", got.Theme)
	}
	if calls != 2 {
		t.Errorf("Find called %d times, want find-create-find", calls)
	}
}

func TestUserService_Export(t *testing.T) {
	users := mocks.NewMockUserRepository()
	users.FindByIDFunc = func(context.Context, uint) (*domain.User, error) {
		return &domain.User{ID: 7, Email: "user@example.com", PasswordHash: "secret", IsActive: true}, nil
	}
	sessions := mocks.NewMockSessionRepository()
	sessions.ListForUserFunc = func(context.Context, uint) ([]domain.Session, error) {
		return []domain.Session{{ID: 1, UserID: 7, Token: "raw-session-token"}}, nil
	}
	analytics := &mocks.MockAnalyticsRepository{
		UserEventCountsFunc: func(context.Context, uint) (*domain.UserEventCounts, error) {
			return &domain.UserEventCounts{PageViews: 12, Searches: 3}, nil
		},
	}
	svc := newTestUserService(users, sessions, &mocks.MockPreferenceRepository{}, analytics)

	export, err := svc.Export(context.Background(), 7)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if export.User == nil || export.User.Email != "user@example.com" {
		t.Error("user projection missing")
	}
	if len(export.Sessions) != 1 || export.Sessions[0].Token != "" {
		t.Error("session tokens must be blanked in the export")
	}
	if export.Analytics.PageViews != 12 {
		t.Errorf("Analytics.PageViews = %d", export.Analytics.PageViews)
	}
	if export.ExportedAt.IsZero() {
		t.Error("ExportedAt not stamped")
	}
}

func TestUserService_DeleteAccount(t *testing.T) {
	newUsers := func() *mocks.MockUserRepository {
		users := mocks.NewMockUserRepository()
		users.FindByIDFunc = func(context.Context, uint) (*domain.User, error) {
			return &domain.User{ID: 7, Email: "user@example.com", PasswordHash: "hashed:longenough1", IsActive: true}, nil
		}
		return users
	}

	t.Run("confirmation succeeds and revokes sessions", func(t *testing.T) {
		users := newUsers()
		deactivated := false
		users.DeactivateFunc = func(context.Context, uint) error {
			deactivated = true
			return nil
		}
		sessions := mocks.NewMockSessionRepository()
		revoked := false
		sessions.InvalidateAllForUserFunc = func(context.Context, uint) error {
			revoked = true
			return nil
		}
		svc := newTestUserService(users, sessions, &mocks.MockPreferenceRepository{}, &mocks.MockAnalyticsRepository{})

		// Email confirmation ignores case and padding.
		if err := svc.DeleteAccount(context.Background(), 7, "  User@Example.COM ", "longenough1"); err != nil {
			t.Fatalf("DeleteAccount() error = %v", err)
		}
		if !deactivated || !revoked {
			t.Errorf("deactivated = %v, revoked = %v, want both", deactivated, revoked)
		}
	})

	t.Run("wrong email confirmation", func(t *testing.T) {
		svc := newTestUserService(newUsers(), mocks.NewMockSessionRepository(),
			&mocks.MockPreferenceRepository{}, &mocks.MockAnalyticsRepository{})
		err := svc.DeleteAccount(context.Background(), 7, "other@example.com", "longenough1")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("DeleteAccount() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		users := newUsers()
		users.DeactivateFunc = func(context.Context, uint) error {
			t.Error("account deactivated despite a wrong password")
			return nil
		}
		svc := newTestUserService(users, mocks.NewMockSessionRepository(),
			&mocks.MockPreferenceRepository{}, &mocks.MockAnalyticsRepository{})
		err := svc.DeleteAccount(context.Background(), 7, "user@example.com", "wrong-password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("DeleteAccount() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestUserService_Activity_DefaultsWindow(t *testing.T) {
	var gotDays int
	analytics := &mocks.MockAnalyticsRepository{
		UserActivityFunc: func(_ context.Context, _ uint, days int) (*domain.ActivitySummary, error) {
			gotDays = days
			return &domain.ActivitySummary{}, nil
		},
	}
	svc := newTestUserService(mocks.NewMockUserRepository(),
		mocks.NewMockSessionRepository(), &mocks.MockPreferenceRepository{}, analytics)

	if _, err := svc.Activity(context.Background(), 7, 0); err != nil {
		t.Fatalf("Activity() error = %v", err)
	}
	if gotDays != 30 {
		t.Errorf("days = %d, want defaulted to 30", gotDays)
	}
}
