package mocks

import (
	"context"
	"time"

	"github.com/keaton678/research-hub/domain"
)

var (
	_ domain.PasswordService = (*MockPasswordService)(nil)
	_ domain.TokenService    = (*MockTokenService)(nil)
	_ domain.Mailer          = (*MockMailer)(nil)
	_ domain.RateLimiter     = (*MockRateLimiter)(nil)
)

// MockPasswordService implements domain.PasswordService for testing. The
// default Hash prefixes the password so tests can see through it.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	SignFunc   func(userID uint, email string, ttl time.Duration) (string, error)
	VerifyFunc func(token string) (*domain.AccessClaims, error)
}

func (m *MockTokenService) Sign(userID uint, email string, ttl time.Duration) (string, error) {
	if m.SignFunc != nil {
		return m.SignFunc(userID, email, ttl)
	}
	return "test-token", nil
}

func (m *MockTokenService) Verify(token string) (*domain.AccessClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return nil, domain.ErrTokenMalformed
}

// MockMailer implements domain.Mailer for testing and records every
// message handed to it.
type MockMailer struct {
	SendFunc func(ctx context.Context, msg domain.Email) error
	Sent     []domain.Email
}

func (m *MockMailer) Send(ctx context.Context, msg domain.Email) error {
	m.Sent = append(m.Sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

// MockRateLimiter implements domain.RateLimiter for testing. Allows by
// default.
type MockRateLimiter struct {
	CheckFunc func(key string) domain.RateDecision
}

func (m *MockRateLimiter) Check(key string) domain.RateDecision {
	if m.CheckFunc != nil {
		return m.CheckFunc(key)
	}
	return domain.RateDecision{Allowed: true}
}
