package mocks

import (
	"context"
	"time"

	"github.com/keaton678/research-hub/domain"
)

var _ domain.AuthService = (*MockAuthService)(nil)

// MockAuthService implements domain.AuthService for handler tests.
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.RegisterResult, error)
	LoginFunc          func(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, userID uint, sessionToken string) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) error
	VerifyEmailFunc    func(ctx context.Context, token string) error
	RefreshFunc        func(ctx context.Context, userID uint, email string) (string, time.Time, error)
}

func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.RegisterResult{UserID: 1}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, meta)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint, sessionToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, sessionToken)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) Refresh(ctx context.Context, userID uint, email string) (string, time.Time, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, userID, email)
	}
	return "refreshed-token", time.Now().Add(time.Hour), nil
}
