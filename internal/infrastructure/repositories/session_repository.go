package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM.
// Sessions are revoked by flipping is_active, never deleted, so the table
// doubles as a login audit trail.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession is the database model for Session.
type DBSession struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Token     string `gorm:"uniqueIndex;size:64;column:session_token"`
	ExpiresAt time.Time
	IsActive  bool   `gorm:"index"`
	IPAddress string `gorm:"size:64"`
	UserAgent string `gorm:"size:512"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBSession) TableName() string {
	return "user_sessions"
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository.
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSession := &DBSession{
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		IsActive:  session.IsActive,
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
	}
	if err := r.db.WithContext(ctx).Create(dbSession).Error; err != nil {
		return err
	}
	session.ID = dbSession.ID
	session.CreatedAt = dbSession.CreatedAt
	return nil
}

// FindByToken implements domain.SessionRepository. Only active, unexpired
// sessions resolve.
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).
		Where("session_token = ? AND is_active = ? AND expires_at > ?", token, true, time.Now()).
		First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// InvalidateByToken implements domain.SessionRepository. Invalidating an
// unknown or already-inactive token is a no-op, which keeps logout
// idempotent.
func (r *SessionRepositoryImpl) InvalidateByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&DBSession{}).
		Where("session_token = ?", token).
		Update("is_active", false).Error
}

// InvalidateAllForUser implements domain.SessionRepository.
func (r *SessionRepositoryImpl) InvalidateAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBSession{}).
		Where("user_id = ?", userID).
		Update("is_active", false).Error
}

// ListForUser implements domain.SessionRepository.
func (r *SessionRepositoryImpl) ListForUser(ctx context.Context, userID uint) ([]domain.Session, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, *r.dbToDomain(&dbSessions[i]))
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) dbToDomain(dbSession *DBSession) *domain.Session {
	return &domain.Session{
		ID:        dbSession.ID,
		UserID:    dbSession.UserID,
		Token:     dbSession.Token,
		ExpiresAt: dbSession.ExpiresAt,
		IsActive:  dbSession.IsActive,
		IPAddress: dbSession.IPAddress,
		UserAgent: dbSession.UserAgent,
		CreatedAt: dbSession.CreatedAt,
	}
}
