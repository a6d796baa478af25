package mocks

import (
	"context"

	"github.com/keaton678/research-hub/domain"
)

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

// MockSessionRepository implements domain.SessionRepository for testing.
type MockSessionRepository struct {
	CreateFunc               func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc          func(ctx context.Context, token string) (*domain.Session, error)
	InvalidateByTokenFunc    func(ctx context.Context, token string) error
	InvalidateAllForUserFunc func(ctx context.Context, userID uint) error
	ListForUserFunc          func(ctx context.Context, userID uint) ([]domain.Session, error)
}

// NewMockSessionRepository creates a mock with default behaviors.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	session.ID = 1
	return nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) InvalidateByToken(ctx context.Context, token string) error {
	if m.InvalidateByTokenFunc != nil {
		return m.InvalidateByTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionRepository) InvalidateAllForUser(ctx context.Context, userID uint) error {
	if m.InvalidateAllForUserFunc != nil {
		return m.InvalidateAllForUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockSessionRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Session, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}
