package repositories

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

// PreferenceRepositoryImpl implements domain.PreferenceRepository using
// GORM. List and map settings are serialized to JSON text columns so the
// schema stays flat.
type PreferenceRepositoryImpl struct {
	db *gorm.DB
}

// DBPreferences is the database model for Preferences.
type DBPreferences struct {
	UserID              uint   `gorm:"primaryKey"`
	Theme               string `gorm:"size:20"`
	EmailNotifications  bool
	PreferredCategories string `gorm:"type:text"`
	BookmarkedResources string `gorm:"type:text"`
	CompletedGuides     string `gorm:"type:text"`
	ProgressData        string `gorm:"type:text"`
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM.
func (DBPreferences) TableName() string {
	return "user_preferences"
}

// NewPreferenceRepository creates a new preference repository.
func NewPreferenceRepository(db *gorm.DB) domain.PreferenceRepository {
	return &PreferenceRepositoryImpl{db: db}
}

// CreateDefault implements domain.PreferenceRepository.
func (r *PreferenceRepositoryImpl) CreateDefault(ctx context.Context, userID uint) error {
	dbPrefs, err := r.domainToDB(domain.DefaultPreferences(userID))
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(dbPrefs).Error
}

// Find implements domain.PreferenceRepository.
func (r *PreferenceRepositoryImpl) Find(ctx context.Context, userID uint) (*domain.Preferences, error) {
	var dbPrefs DBPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbPrefs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbPrefs)
}

// Update implements domain.PreferenceRepository.
func (r *PreferenceRepositoryImpl) Update(ctx context.Context, prefs *domain.Preferences) error {
	dbPrefs, err := r.domainToDB(prefs)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&DBPreferences{}).
		Where("user_id = ?", prefs.UserID).
		Updates(map[string]any{
			"theme":                dbPrefs.Theme,
			"email_notifications":  dbPrefs.EmailNotifications,
			"preferred_categories": dbPrefs.PreferredCategories,
			"bookmarked_resources": dbPrefs.BookmarkedResources,
			"completed_guides":     dbPrefs.CompletedGuides,
			"progress_data":        dbPrefs.ProgressData,
		}).Error
}

func (r *PreferenceRepositoryImpl) domainToDB(prefs *domain.Preferences) (*DBPreferences, error) {
	categories, err := json.Marshal(prefs.PreferredCategories)
	if err != nil {
		return nil, err
	}
	bookmarks, err := json.Marshal(prefs.BookmarkedResources)
	if err != nil {
		return nil, err
	}
	guides, err := json.Marshal(prefs.CompletedGuides)
	if err != nil {
		return nil, err
	}
	progress, err := json.Marshal(prefs.ProgressData)
	if err != nil {
		return nil, err
	}
	return &DBPreferences{
		UserID:              prefs.UserID,
		Theme:               prefs.Theme,
		EmailNotifications:  prefs.EmailNotifications,
		PreferredCategories: string(categories),
		BookmarkedResources: string(bookmarks),
		CompletedGuides:     string(guides),
		ProgressData:        string(progress),
	}, nil
}

func (r *PreferenceRepositoryImpl) dbToDomain(dbPrefs *DBPreferences) (*domain.Preferences, error) {
	prefs := &domain.Preferences{
		UserID:              dbPrefs.UserID,
		Theme:               dbPrefs.Theme,
		EmailNotifications:  dbPrefs.EmailNotifications,
		PreferredCategories: []string{},
		BookmarkedResources: []string{},
		CompletedGuides:     []string{},
		ProgressData:        map[string]any{},
	}
	if dbPrefs.PreferredCategories != "" {
		if err := json.Unmarshal([]byte(dbPrefs.PreferredCategories), &prefs.PreferredCategories); err != nil {
			return nil, err
		}
	}
	if dbPrefs.BookmarkedResources != "" {
		if err := json.Unmarshal([]byte(dbPrefs.BookmarkedResources), &prefs.BookmarkedResources); err != nil {
			return nil, err
		}
	}
	if dbPrefs.CompletedGuides != "" {
		if err := json.Unmarshal([]byte(dbPrefs.CompletedGuides), &prefs.CompletedGuides); err != nil {
			return nil, err
		}
	}
	if dbPrefs.ProgressData != "" {
		if err := json.Unmarshal([]byte(dbPrefs.ProgressData), &prefs.ProgressData); err != nil {
			return nil, err
		}
	}
	return prefs, nil
}
