package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

func setupCachedRepo(t *testing.T) (domain.SessionRepository, *miniredis.Miniredis, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &DBSession{})
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedSessionRepository(NewSessionRepository(db), client), mr, db
}

func TestCachedSessionRepository_FindByToken_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	repo, mr, db := setupCachedRepo(t)

	session := seedSession(t, repo, 1, "tok", time.Now().Add(time.Hour))
	if !mr.Exists("session:tok") {
		t.Fatal("session not cached on create")
	}

	// Remove the row underneath; a cache hit must still resolve.
	if err := db.Delete(&DBSession{}, session.ID).Error; err != nil {
		t.Fatalf("failed to delete row: %v", err)
	}
	found, err := repo.FindByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("FindByToken() error = %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("UserID = %d, want 1", found.UserID)
	}
}

func TestCachedSessionRepository_FindByToken_PopulatesCacheOnMiss(t *testing.T) {
	ctx := context.Background()
	repo, mr, _ := setupCachedRepo(t)

	seedSession(t, repo, 1, "tok", time.Now().Add(time.Hour))
	mr.Del("session:tok")

	if _, err := repo.FindByToken(ctx, "tok"); err != nil {
		t.Fatalf("FindByToken() error = %v", err)
	}
	if !mr.Exists("session:tok") {
		t.Error("cache not repopulated after a miss")
	}
}

func TestCachedSessionRepository_FindByToken_ExpiredCacheEntry(t *testing.T) {
	ctx := context.Background()
	repo, mr, _ := setupCachedRepo(t)

	// A stale cache entry whose session has lapsed must be evicted, not
	// served.
	stale := domain.Session{
		UserID:    1,
		Token:     "tok",
		ExpiresAt: time.Now().Add(-time.Minute),
		IsActive:  true,
	}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mr.Set("session:tok", string(data))

	_, err = repo.FindByToken(ctx, "tok")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("FindByToken() error = %v, want ErrSessionExpired", err)
	}
	if mr.Exists("session:tok") {
		t.Error("expired cache entry not evicted")
	}
}

func TestCachedSessionRepository_InvalidateByToken(t *testing.T) {
	ctx := context.Background()
	repo, mr, _ := setupCachedRepo(t)

	seedSession(t, repo, 1, "tok", time.Now().Add(time.Hour))
	if err := repo.InvalidateByToken(ctx, "tok"); err != nil {
		t.Fatalf("InvalidateByToken() error = %v", err)
	}
	if mr.Exists("session:tok") {
		t.Error("cache key survived invalidation")
	}
	if _, err := repo.FindByToken(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("FindByToken() error = %v, want ErrSessionNotFound", err)
	}
}

func TestCachedSessionRepository_InvalidateAllForUser(t *testing.T) {
	ctx := context.Background()
	repo, mr, _ := setupCachedRepo(t)

	seedSession(t, repo, 1, "tok-a", time.Now().Add(time.Hour))
	seedSession(t, repo, 1, "tok-b", time.Now().Add(time.Hour))
	seedSession(t, repo, 2, "tok-other", time.Now().Add(time.Hour))

	if err := repo.InvalidateAllForUser(ctx, 1); err != nil {
		t.Fatalf("InvalidateAllForUser() error = %v", err)
	}
	if mr.Exists("session:tok-a") || mr.Exists("session:tok-b") {
		t.Error("cache keys survived invalidation")
	}
	if !mr.Exists("session:tok-other") {
		t.Error("unrelated user's cache key dropped")
	}
}

func TestCachedSessionRepository_DegradesWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	repo, mr, _ := setupCachedRepo(t)

	seedSession(t, repo, 1, "tok", time.Now().Add(time.Hour))
	mr.Close()

	// With the cache gone the DB row still answers.
	found, err := repo.FindByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("FindByToken() error = %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("UserID = %d, want 1", found.UserID)
	}
}
