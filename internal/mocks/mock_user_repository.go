package mocks

import (
	"context"
	"time"

	"github.com/keaton678/research-hub/domain"
)

var _ domain.UserRepository = (*MockUserRepository)(nil)

// MockUserRepository implements domain.UserRepository for testing.
type MockUserRepository struct {
	CreateFunc                  func(ctx context.Context, user *domain.User) error
	FindByEmailFunc             func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc                func(ctx context.Context, id uint) (*domain.User, error)
	FindByVerificationTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	FindByResetTokenFunc        func(ctx context.Context, token string) (*domain.User, error)
	UpdateProfileFunc           func(ctx context.Context, id uint, fullName, institution string) error
	UpdateLastLoginFunc         func(ctx context.Context, id uint) error
	SetResetTokenFunc           func(ctx context.Context, id uint, token string, expires time.Time) error
	ResetPasswordFunc           func(ctx context.Context, id uint, passwordHash string) error
	MarkEmailVerifiedFunc       func(ctx context.Context, id uint) error
	DeactivateFunc              func(ctx context.Context, id uint) error
}

// NewMockUserRepository creates a mock with default behaviors.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByVerificationTokenFunc != nil {
		return m.FindByVerificationTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, fullName, institution string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, fullName, institution)
	}
	return nil
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, token, expires)
	}
	return nil
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, id uint, passwordHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uint) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}
