package repositories

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keaton678/research-hub/domain"
)

// AnalyticsRepositoryImpl implements domain.AnalyticsRepository using
// GORM. Raw events are append-only; rollups land in a separate daily
// table keyed by calendar date.
type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

// DBPageView is the database model for PageView.
type DBPageView struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     *uint  `gorm:"index"`
	SessionID  string `gorm:"index;size:64"`
	PageURL    string `gorm:"size:512"`
	PageTitle  string `gorm:"size:255"`
	Referrer   string `gorm:"size:512"`
	IPAddress  string `gorm:"size:64"`
	UserAgent  string `gorm:"size:512"`
	DeviceType string `gorm:"size:20"`
	Timestamp  time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBPageView) TableName() string {
	return "page_views"
}

// DBResourceInteraction is the database model for ResourceInteraction.
type DBResourceInteraction struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           *uint  `gorm:"index"`
	SessionID        string `gorm:"index;size:64"`
	ResourceCategory string `gorm:"size:100"`
	ResourceTitle    string `gorm:"size:255"`
	InteractionType  string `gorm:"index;size:30"`
	InteractionData  string `gorm:"type:text"`
	IPAddress        string `gorm:"size:64"`
	Timestamp        time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBResourceInteraction) TableName() string {
	return "resource_interactions"
}

// DBSearchQuery is the database model for SearchQuery.
type DBSearchQuery struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        *uint  `gorm:"index"`
	SessionID     string `gorm:"index;size:64"`
	Query         string `gorm:"size:255;column:query"`
	ResultsCount  int
	ClickedResult string    `gorm:"size:255"`
	Timestamp     time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBSearchQuery) TableName() string {
	return "search_queries"
}

// DBDailyAnalytics is the database model for DailyAnalytics. TopPages and
// TopSearches are JSON text columns.
type DBDailyAnalytics struct {
	Date               string `gorm:"primaryKey;size:10"`
	TotalUsers         int64
	NewUsers           int64
	ReturningUsers     int64
	TotalPageViews     int64
	UniquePageViews    int64
	AvgSessionDuration float64
	BounceRate         float64
	TopPages           string `gorm:"type:text"`
	TopSearches        string `gorm:"type:text"`
	CreatedAt          time.Time
}

// TableName returns the table name for GORM.
func (DBDailyAnalytics) TableName() string {
	return "analytics_daily"
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *gorm.DB) domain.AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

// RecordPageView implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) RecordPageView(ctx context.Context, pv *domain.PageView) error {
	row := &DBPageView{
		UserID:     pv.UserID,
		SessionID:  pv.SessionID,
		PageURL:    pv.PageURL,
		PageTitle:  pv.PageTitle,
		Referrer:   pv.Referrer,
		IPAddress:  pv.IPAddress,
		UserAgent:  pv.UserAgent,
		DeviceType: pv.DeviceType,
		Timestamp:  pv.Timestamp,
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	pv.ID = row.ID
	pv.Timestamp = row.Timestamp
	return nil
}

// RecordInteraction implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) RecordInteraction(ctx context.Context, ri *domain.ResourceInteraction) error {
	data := ""
	if len(ri.InteractionData) > 0 {
		encoded, err := json.Marshal(ri.InteractionData)
		if err != nil {
			return err
		}
		data = string(encoded)
	}
	row := &DBResourceInteraction{
		UserID:           ri.UserID,
		SessionID:        ri.SessionID,
		ResourceCategory: ri.ResourceCategory,
		ResourceTitle:    ri.ResourceTitle,
		InteractionType:  ri.InteractionType,
		InteractionData:  data,
		IPAddress:        ri.IPAddress,
		Timestamp:        ri.Timestamp,
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	ri.ID = row.ID
	ri.Timestamp = row.Timestamp
	return nil
}

// RecordSearch implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) RecordSearch(ctx context.Context, sq *domain.SearchQuery) error {
	row := &DBSearchQuery{
		UserID:        sq.UserID,
		SessionID:     sq.SessionID,
		Query:         sq.Query,
		ResultsCount:  sq.ResultsCount,
		ClickedResult: sq.ClickedResult,
		Timestamp:     sq.Timestamp,
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	sq.ID = row.ID
	sq.Timestamp = row.Timestamp
	return nil
}

// UserStats implements domain.AnalyticsRepository. Active counts come from
// last_login_at on the users table.
func (r *AnalyticsRepositoryImpl) UserStats(ctx context.Context) (*domain.UserStats, error) {
	stats := &domain.UserStats{}
	users := func() *gorm.DB { return r.db.WithContext(ctx).Model(&DBUser{}) }

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	if err := users().Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := users().Where("created_at >= ?", dayStart).Count(&stats.NewUsersToday).Error; err != nil {
		return nil, err
	}
	if err := users().Where("created_at >= ?", weekAgo).Count(&stats.NewUsersWeek).Error; err != nil {
		return nil, err
	}
	if err := users().Where("last_login_at >= ?", dayStart).Count(&stats.ActiveUsersToday).Error; err != nil {
		return nil, err
	}
	if err := users().Where("last_login_at >= ?", weekAgo).Count(&stats.ActiveUsersWeek).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// PopularContent implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) PopularContent(ctx context.Context, days int) ([]domain.PopularItem, error) {
	since := time.Now().AddDate(0, 0, -days)
	var items []domain.PopularItem
	err := r.db.WithContext(ctx).Model(&DBResourceInteraction{}).
		Select("resource_category, resource_title, COUNT(*) AS interaction_count").
		Where("timestamp >= ?", since).
		Group("resource_category, resource_title").
		Order("interaction_count DESC").
		Limit(10).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TopSearches implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) TopSearches(ctx context.Context, days int) ([]domain.QueryCount, error) {
	since := time.Now().AddDate(0, 0, -days)
	var queries []domain.QueryCount
	err := r.db.WithContext(ctx).Model(&DBSearchQuery{}).
		Select("query, COUNT(*) AS count").
		Where("timestamp >= ?", since).
		Group("query").
		Order("count DESC").
		Limit(10).
		Scan(&queries).Error
	if err != nil {
		return nil, err
	}
	return queries, nil
}

// PageViewTrends implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) PageViewTrends(ctx context.Context, days int) ([]domain.PageViewTrend, error) {
	since := time.Now().AddDate(0, 0, -days)
	var trends []domain.PageViewTrend
	err := r.db.WithContext(ctx).Model(&DBPageView{}).
		Select("DATE(timestamp) AS date, COUNT(*) AS views, COUNT(DISTINCT session_id) AS unique_users").
		Where("timestamp >= ?", since).
		Group("DATE(timestamp)").
		Order("date ASC").
		Scan(&trends).Error
	if err != nil {
		return nil, err
	}
	return trends, nil
}

// UserActivity implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) UserActivity(ctx context.Context, userID uint, days int) (*domain.ActivitySummary, error) {
	since := time.Now().AddDate(0, 0, -days)
	summary := &domain.ActivitySummary{
		PageViews:    []domain.DailyCount{},
		Interactions: []domain.TypeCount{},
		TopSearches:  []domain.QueryCount{},
	}

	err := r.db.WithContext(ctx).Model(&DBPageView{}).
		Select("DATE(timestamp) AS date, COUNT(*) AS count").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Group("DATE(timestamp)").
		Order("date DESC").
		Scan(&summary.PageViews).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&DBResourceInteraction{}).
		Select("interaction_type AS type, COUNT(*) AS count").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Group("interaction_type").
		Order("count DESC").
		Scan(&summary.Interactions).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&DBSearchQuery{}).
		Select("query, COUNT(*) AS count").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Group("query").
		Order("count DESC").
		Limit(10).
		Scan(&summary.TopSearches).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// UserEventCounts implements domain.AnalyticsRepository.
func (r *AnalyticsRepositoryImpl) UserEventCounts(ctx context.Context, userID uint) (*domain.UserEventCounts, error) {
	counts := &domain.UserEventCounts{}
	err := r.db.WithContext(ctx).Model(&DBPageView{}).
		Where("user_id = ?", userID).Count(&counts.PageViews).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&DBResourceInteraction{}).
		Where("user_id = ?", userID).Count(&counts.Interactions).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&DBSearchQuery{}).
		Where("user_id = ?", userID).Count(&counts.Searches).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// ComputeDaily implements domain.AnalyticsRepository. date is a calendar
// day in YYYY-MM-DD form; the rollup spans that whole day.
func (r *AnalyticsRepositoryImpl) ComputeDaily(ctx context.Context, date string) (*domain.DailyAnalytics, error) {
	row := &domain.DailyAnalytics{Date: date, TopPages: []domain.PageCount{}, TopSearches: []domain.QueryCount{}}
	pageViews := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&DBPageView{}).Where("DATE(timestamp) = ?", date)
	}

	if err := pageViews().Count(&row.TotalPageViews).Error; err != nil {
		return nil, err
	}
	if err := pageViews().Distinct("session_id").Count(&row.UniquePageViews).Error; err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Model(&DBPageView{}).
		Where("DATE(timestamp) = ? AND user_id IS NOT NULL", date).
		Distinct("user_id").
		Count(&row.TotalUsers).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&DBUser{}).
		Where("DATE(created_at) = ?", date).
		Count(&row.NewUsers).Error
	if err != nil {
		return nil, err
	}
	row.ReturningUsers = row.TotalUsers - row.NewUsers
	if row.ReturningUsers < 0 {
		row.ReturningUsers = 0
	}

	err = pageViews().
		Select("page_url, COUNT(*) AS views").
		Group("page_url").
		Order("views DESC").
		Limit(10).
		Scan(&row.TopPages).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&DBSearchQuery{}).
		Select("query, COUNT(*) AS count").
		Where("DATE(timestamp) = ?", date).
		Group("query").
		Order("count DESC").
		Limit(10).
		Scan(&row.TopSearches).Error
	if err != nil {
		return nil, err
	}

	// Sessions with a single page view count as bounces.
	var sessions, bounced int64
	if err := pageViews().Distinct("session_id").Count(&sessions).Error; err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Table("(?) AS per_session",
			pageViews().Select("session_id, COUNT(*) AS views").Group("session_id")).
		Where("views = 1").
		Count(&bounced).Error
	if err != nil {
		return nil, err
	}
	if sessions > 0 {
		row.BounceRate = float64(bounced) / float64(sessions)
	}

	return row, nil
}

// SaveDaily implements domain.AnalyticsRepository. Re-running aggregation
// for a day replaces that day's row.
func (r *AnalyticsRepositoryImpl) SaveDaily(ctx context.Context, row *domain.DailyAnalytics) error {
	topPages, err := json.Marshal(row.TopPages)
	if err != nil {
		return err
	}
	topSearches, err := json.Marshal(row.TopSearches)
	if err != nil {
		return err
	}
	dbRow := &DBDailyAnalytics{
		Date:               row.Date,
		TotalUsers:         row.TotalUsers,
		NewUsers:           row.NewUsers,
		ReturningUsers:     row.ReturningUsers,
		TotalPageViews:     row.TotalPageViews,
		UniquePageViews:    row.UniquePageViews,
		AvgSessionDuration: row.AvgSessionDuration,
		BounceRate:         row.BounceRate,
		TopPages:           string(topPages),
		TopSearches:        string(topSearches),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			UpdateAll: true,
		}).
		Create(dbRow).Error
}
