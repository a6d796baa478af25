package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keaton678/research-hub/domain"
)

func seedSession(t *testing.T, repo domain.SessionRepository, userID uint, token string, expiresAt time.Time) *domain.Session {
	t.Helper()
	session := &domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
		IPAddress: "1.2.3.4",
		UserAgent: "go-test",
	}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func TestSessionRepositoryImpl_FindByToken(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t, &DBSession{}))

	seedSession(t, repo, 1, "live-tok", time.Now().Add(time.Hour))
	seedSession(t, repo, 1, "expired-tok", time.Now().Add(-time.Minute))
	revoked := seedSession(t, repo, 1, "revoked-tok", time.Now().Add(time.Hour))
	if err := repo.InvalidateByToken(ctx, revoked.Token); err != nil {
		t.Fatalf("InvalidateByToken() error = %v", err)
	}

	t.Run("active unexpired session resolves", func(t *testing.T) {
		session, err := repo.FindByToken(ctx, "live-tok")
		if err != nil {
			t.Fatalf("FindByToken() error = %v", err)
		}
		if session.UserID != 1 {
			t.Errorf("UserID = %d, want 1", session.UserID)
		}
		if session.IPAddress != "1.2.3.4" || session.UserAgent != "go-test" {
			t.Error("session metadata lost")
		}
	})

	t.Run("expired session does not resolve", func(t *testing.T) {
		_, err := repo.FindByToken(ctx, "expired-tok")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("FindByToken() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("revoked session does not resolve", func(t *testing.T) {
		_, err := repo.FindByToken(ctx, "revoked-tok")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("FindByToken() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.FindByToken(ctx, "no-such-tok")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("FindByToken() error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestSessionRepositoryImpl_InvalidateByToken(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t, &DBSession{}))
	seedSession(t, repo, 1, "tok", time.Now().Add(time.Hour))

	if err := repo.InvalidateByToken(ctx, "tok"); err != nil {
		t.Fatalf("InvalidateByToken() error = %v", err)
	}
	// Idempotent, including for tokens that never existed.
	if err := repo.InvalidateByToken(ctx, "tok"); err != nil {
		t.Errorf("second InvalidateByToken() error = %v", err)
	}
	if err := repo.InvalidateByToken(ctx, "never-existed"); err != nil {
		t.Errorf("InvalidateByToken(unknown) error = %v", err)
	}
}

func TestSessionRepositoryImpl_InvalidateAllForUser(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t, &DBSession{}))

	seedSession(t, repo, 1, "tok-a", time.Now().Add(time.Hour))
	seedSession(t, repo, 1, "tok-b", time.Now().Add(time.Hour))
	seedSession(t, repo, 2, "tok-other", time.Now().Add(time.Hour))

	if err := repo.InvalidateAllForUser(ctx, 1); err != nil {
		t.Fatalf("InvalidateAllForUser() error = %v", err)
	}

	// Revocation flips is_active; the rows stay behind as an audit trail.
	sessions, err := repo.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListForUser() returned %d sessions, want 2", len(sessions))
	}
	for _, s := range sessions {
		if s.IsActive {
			t.Errorf("session %q still active", s.Token)
		}
	}

	other, err := repo.FindByToken(ctx, "tok-other")
	if err != nil {
		t.Fatalf("unrelated user's session revoked: %v", err)
	}
	if !other.IsActive {
		t.Error("unrelated user's session inactive")
	}
}
