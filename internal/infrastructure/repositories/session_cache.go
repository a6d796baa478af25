package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keaton678/research-hub/domain"
)

// CachedSessionRepository fronts a SessionRepository with a Redis
// read-through cache for the hot per-request token lookup. The SQL row
// stays authoritative; cache entries expire with the session and are
// dropped on invalidation.
type CachedSessionRepository struct {
	inner  domain.SessionRepository
	client *redis.Client
	prefix string
}

// NewCachedSessionRepository wraps inner with a Redis cache.
func NewCachedSessionRepository(inner domain.SessionRepository, client *redis.Client) domain.SessionRepository {
	return &CachedSessionRepository{
		inner:  inner,
		client: client,
		prefix: "session:",
	}
}

// Create implements domain.SessionRepository.
func (r *CachedSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := r.inner.Create(ctx, session); err != nil {
		return err
	}
	r.store(ctx, session)
	return nil
}

// FindByToken implements domain.SessionRepository.
func (r *CachedSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	key := r.prefix + token
	data, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var session domain.Session
		if err := json.Unmarshal([]byte(data), &session); err == nil {
			if session.Valid(time.Now()) {
				return &session, nil
			}
			r.client.Del(ctx, key)
			return nil, domain.ErrSessionExpired
		}
	} else if err != redis.Nil {
		// Cache trouble degrades to a DB read, it never fails the request.
		return r.inner.FindByToken(ctx, token)
	}

	session, err := r.inner.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	r.store(ctx, session)
	return session, nil
}

// InvalidateByToken implements domain.SessionRepository.
func (r *CachedSessionRepository) InvalidateByToken(ctx context.Context, token string) error {
	if err := r.inner.InvalidateByToken(ctx, token); err != nil {
		return err
	}
	return r.client.Del(ctx, r.prefix+token).Err()
}

// InvalidateAllForUser implements domain.SessionRepository. The user's
// cached tokens are found via the DB listing since the cache is keyed by
// token only.
func (r *CachedSessionRepository) InvalidateAllForUser(ctx context.Context, userID uint) error {
	sessions, err := r.inner.ListForUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := r.inner.InvalidateAllForUser(ctx, userID); err != nil {
		return err
	}
	for i := range sessions {
		r.client.Del(ctx, r.prefix+sessions[i].Token)
	}
	return nil
}

// ListForUser implements domain.SessionRepository.
func (r *CachedSessionRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Session, error) {
	return r.inner.ListForUser(ctx, userID)
}

func (r *CachedSessionRepository) store(ctx context.Context, session *domain.Session) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	r.client.Set(ctx, fmt.Sprintf("%s%s", r.prefix, session.Token), data, ttl)
}
