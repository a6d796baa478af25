package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

// FeedbackRepositoryImpl implements domain.FeedbackRepository using GORM.
type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

// DBFeedback is the database model for Feedback.
type DBFeedback struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      *uint `gorm:"index"`
	Email       string `gorm:"size:255"`
	Name        string `gorm:"size:100"`
	Subject     string `gorm:"size:255"`
	Message     string `gorm:"type:text"`
	Type        string `gorm:"index;size:30"`
	Status      string `gorm:"index;size:20"`
	RespondedAt *time.Time
	CreatedAt   time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBFeedback) TableName() string {
	return "feedback"
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *gorm.DB) domain.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

// Create implements domain.FeedbackRepository.
func (r *FeedbackRepositoryImpl) Create(ctx context.Context, fb *domain.Feedback) error {
	dbFeedback := &DBFeedback{
		UserID:  fb.UserID,
		Email:   fb.Email,
		Name:    fb.Name,
		Subject: fb.Subject,
		Message: fb.Message,
		Type:    fb.Type,
		Status:  fb.Status,
	}
	if err := r.db.WithContext(ctx).Create(dbFeedback).Error; err != nil {
		return err
	}
	fb.ID = dbFeedback.ID
	fb.CreatedAt = dbFeedback.CreatedAt
	return nil
}

// List implements domain.FeedbackRepository.
func (r *FeedbackRepositoryImpl) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, int64, error) {
	query := r.db.WithContext(ctx).Model(&DBFeedback{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbRows []DBFeedback
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&dbRows).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]domain.Feedback, 0, len(dbRows))
	for i := range dbRows {
		rows = append(rows, *r.dbToDomain(&dbRows[i]))
	}
	return rows, total, nil
}

// UpdateStatus implements domain.FeedbackRepository. Moving an entry to
// resolved or closed stamps responded_at.
func (r *FeedbackRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	updates := map[string]any{"status": status}
	if status == "resolved" || status == "closed" {
		updates["responded_at"] = time.Now()
	}
	result := r.db.WithContext(ctx).Model(&DBFeedback{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

// Stats implements domain.FeedbackRepository. Recent and the daily series
// cover the trailing number of days given.
func (r *FeedbackRepositoryImpl) Stats(ctx context.Context, days int) (*domain.FeedbackStats, error) {
	stats := &domain.FeedbackStats{}
	model := func() *gorm.DB { return r.db.WithContext(ctx).Model(&DBFeedback{}) }

	if err := model().Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	byStatus := map[string]*int64{
		"new":         &stats.New,
		"in_progress": &stats.InProgress,
		"resolved":    &stats.Resolved,
		"closed":      &stats.Closed,
	}
	for status, dst := range byStatus {
		if err := model().Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	if err := model().Where("created_at >= ?", since).Count(&stats.Recent).Error; err != nil {
		return nil, err
	}

	err := model().
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&stats.ByType).Error
	if err != nil {
		return nil, err
	}

	err = model().
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&stats.Daily).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily feedback counts: %w", err)
	}

	return stats, nil
}

func (r *FeedbackRepositoryImpl) dbToDomain(dbFeedback *DBFeedback) *domain.Feedback {
	return &domain.Feedback{
		ID:          dbFeedback.ID,
		UserID:      dbFeedback.UserID,
		Email:       dbFeedback.Email,
		Name:        dbFeedback.Name,
		Subject:     dbFeedback.Subject,
		Message:     dbFeedback.Message,
		Type:        dbFeedback.Type,
		Status:      dbFeedback.Status,
		RespondedAt: dbFeedback.RespondedAt,
		CreatedAt:   dbFeedback.CreatedAt,
	}
}
