package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser is the database model for User.
type DBUser struct {
	ID                   uint   `gorm:"primaryKey"`
	Email                string `gorm:"uniqueIndex;size:255"`
	FullName             string `gorm:"size:100"`
	Institution          string `gorm:"size:255"`
	PasswordHash         string `gorm:"size:255"`
	EmailVerified        bool
	IsActive             bool `gorm:"index"`
	NewsletterSubscribed bool
	VerificationToken    *string `gorm:"index;size:64"`
	ResetToken           *string `gorm:"index;size:64"`
	ResetTokenExpires    *time.Time
	LastLoginAt          *time.Time
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. Emails are stored lowercased so
// the unique index enforces case-insensitive uniqueness.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	dbUser.Email = strings.ToLower(dbUser.Email)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByEmail implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByVerificationToken implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByResetToken implements domain.UserRepository. Expiry is checked by
// the auth service so it can reject with a precise error.
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateProfile implements domain.UserRepository.
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, id uint, fullName, institution string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{"full_name": fullName, "institution": institution}).Error
}

// UpdateLastLogin implements domain.UserRepository.
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// SetResetToken implements domain.UserRepository.
func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{"reset_token": token, "reset_token_expires": expires}).Error
}

// ResetPassword implements domain.UserRepository. The new hash and the
// token clear land in one UPDATE so an old password and a live reset token
// never coexist.
func (r *UserRepositoryImpl) ResetPassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":       passwordHash,
			"reset_token":         nil,
			"reset_token_expires": nil,
		}).Error
}

// MarkEmailVerified implements domain.UserRepository.
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{"email_verified": true, "verification_token": nil}).Error
}

// Deactivate implements domain.UserRepository.
func (r *UserRepositoryImpl) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:                   user.ID,
		Email:                user.Email,
		FullName:             user.FullName,
		Institution:          user.Institution,
		PasswordHash:         user.PasswordHash,
		EmailVerified:        user.EmailVerified,
		IsActive:             user.IsActive,
		NewsletterSubscribed: user.NewsletterSubscribed,
		ResetTokenExpires:    user.ResetTokenExpires,
		LastLoginAt:          user.LastLoginAt,
	}
	if user.VerificationToken != "" {
		dbUser.VerificationToken = &user.VerificationToken
	}
	if user.ResetToken != "" {
		dbUser.ResetToken = &user.ResetToken
	}
	return dbUser
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:                   dbUser.ID,
		Email:                dbUser.Email,
		FullName:             dbUser.FullName,
		Institution:          dbUser.Institution,
		PasswordHash:         dbUser.PasswordHash,
		EmailVerified:        dbUser.EmailVerified,
		IsActive:             dbUser.IsActive,
		NewsletterSubscribed: dbUser.NewsletterSubscribed,
		ResetTokenExpires:    dbUser.ResetTokenExpires,
		LastLoginAt:          dbUser.LastLoginAt,
		CreatedAt:            dbUser.CreatedAt,
		UpdatedAt:            dbUser.UpdatedAt,
	}
	if dbUser.VerificationToken != nil {
		user.VerificationToken = *dbUser.VerificationToken
	}
	if dbUser.ResetToken != nil {
		user.ResetToken = *dbUser.ResetToken
	}
	return user
}
