package mocks

import (
	"context"

	"github.com/keaton678/research-hub/domain"
)

var (
	_ domain.PreferenceRepository = (*MockPreferenceRepository)(nil)
	_ domain.ContentRepository    = (*MockContentRepository)(nil)
	_ domain.FeedbackRepository   = (*MockFeedbackRepository)(nil)
	_ domain.AnalyticsRepository  = (*MockAnalyticsRepository)(nil)
)

// MockPreferenceRepository implements domain.PreferenceRepository for
// testing.
type MockPreferenceRepository struct {
	CreateDefaultFunc func(ctx context.Context, userID uint) error
	FindFunc          func(ctx context.Context, userID uint) (*domain.Preferences, error)
	UpdateFunc        func(ctx context.Context, prefs *domain.Preferences) error
}

func (m *MockPreferenceRepository) CreateDefault(ctx context.Context, userID uint) error {
	if m.CreateDefaultFunc != nil {
		return m.CreateDefaultFunc(ctx, userID)
	}
	return nil
}

func (m *MockPreferenceRepository) Find(ctx context.Context, userID uint) (*domain.Preferences, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	return domain.DefaultPreferences(userID), nil
}

func (m *MockPreferenceRepository) Update(ctx context.Context, prefs *domain.Preferences) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, prefs)
	}
	return nil
}

// MockContentRepository implements domain.ContentRepository for testing.
type MockContentRepository struct {
	ListFunc               func(ctx context.Context, filter domain.ContentFilter) (*domain.ContentPage, error)
	FindBySlugFunc         func(ctx context.Context, slug string) (*domain.ContentItem, error)
	ListByCategoryFunc     func(ctx context.Context, category string, limit, offset int) (*domain.ContentPage, error)
	IncrementViewCountFunc func(ctx context.Context, id uint) error
	CategoriesFunc         func(ctx context.Context) ([]domain.CategorySummary, error)
	SearchFunc             func(ctx context.Context, query, category string, limit int) ([]domain.SearchHit, error)
}

func (m *MockContentRepository) List(ctx context.Context, filter domain.ContentFilter) (*domain.ContentPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &domain.ContentPage{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (m *MockContentRepository) FindBySlug(ctx context.Context, slug string) (*domain.ContentItem, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrContentNotFound
}

func (m *MockContentRepository) ListByCategory(ctx context.Context, category string, limit, offset int) (*domain.ContentPage, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category, limit, offset)
	}
	return &domain.ContentPage{Limit: limit, Offset: offset}, nil
}

func (m *MockContentRepository) IncrementViewCount(ctx context.Context, id uint) error {
	if m.IncrementViewCountFunc != nil {
		return m.IncrementViewCountFunc(ctx, id)
	}
	return nil
}

func (m *MockContentRepository) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockContentRepository) Search(ctx context.Context, query, category string, limit int) ([]domain.SearchHit, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, category, limit)
	}
	return nil, nil
}

// MockFeedbackRepository implements domain.FeedbackRepository for
// testing.
type MockFeedbackRepository struct {
	CreateFunc       func(ctx context.Context, fb *domain.Feedback) error
	ListFunc         func(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, int64, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) error
	StatsFunc        func(ctx context.Context, days int) (*domain.FeedbackStats, error)
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, fb)
	}
	fb.ID = 1
	return nil
}

func (m *MockFeedbackRepository) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockFeedbackRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockFeedbackRepository) Stats(ctx context.Context, days int) (*domain.FeedbackStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, days)
	}
	return &domain.FeedbackStats{}, nil
}

// MockAnalyticsRepository implements domain.AnalyticsRepository for
// testing.
type MockAnalyticsRepository struct {
	RecordPageViewFunc    func(ctx context.Context, pv *domain.PageView) error
	RecordInteractionFunc func(ctx context.Context, ri *domain.ResourceInteraction) error
	RecordSearchFunc      func(ctx context.Context, sq *domain.SearchQuery) error
	UserStatsFunc         func(ctx context.Context) (*domain.UserStats, error)
	PopularContentFunc    func(ctx context.Context, days int) ([]domain.PopularItem, error)
	TopSearchesFunc       func(ctx context.Context, days int) ([]domain.QueryCount, error)
	PageViewTrendsFunc    func(ctx context.Context, days int) ([]domain.PageViewTrend, error)
	UserActivityFunc      func(ctx context.Context, userID uint, days int) (*domain.ActivitySummary, error)
	UserEventCountsFunc   func(ctx context.Context, userID uint) (*domain.UserEventCounts, error)
	ComputeDailyFunc      func(ctx context.Context, date string) (*domain.DailyAnalytics, error)
	SaveDailyFunc         func(ctx context.Context, row *domain.DailyAnalytics) error
}

func (m *MockAnalyticsRepository) RecordPageView(ctx context.Context, pv *domain.PageView) error {
	if m.RecordPageViewFunc != nil {
		return m.RecordPageViewFunc(ctx, pv)
	}
	return nil
}

func (m *MockAnalyticsRepository) RecordInteraction(ctx context.Context, ri *domain.ResourceInteraction) error {
	if m.RecordInteractionFunc != nil {
		return m.RecordInteractionFunc(ctx, ri)
	}
	return nil
}

func (m *MockAnalyticsRepository) RecordSearch(ctx context.Context, sq *domain.SearchQuery) error {
	if m.RecordSearchFunc != nil {
		return m.RecordSearchFunc(ctx, sq)
	}
	return nil
}

func (m *MockAnalyticsRepository) UserStats(ctx context.Context) (*domain.UserStats, error) {
	if m.UserStatsFunc != nil {
		return m.UserStatsFunc(ctx)
	}
	return &domain.UserStats{}, nil
}

func (m *MockAnalyticsRepository) PopularContent(ctx context.Context, days int) ([]domain.PopularItem, error) {
	if m.PopularContentFunc != nil {
		return m.PopularContentFunc(ctx, days)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) TopSearches(ctx context.Context, days int) ([]domain.QueryCount, error) {
	if m.TopSearchesFunc != nil {
		return m.TopSearchesFunc(ctx, days)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) PageViewTrends(ctx context.Context, days int) ([]domain.PageViewTrend, error) {
	if m.PageViewTrendsFunc != nil {
		return m.PageViewTrendsFunc(ctx, days)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) UserActivity(ctx context.Context, userID uint, days int) (*domain.ActivitySummary, error) {
	if m.UserActivityFunc != nil {
		return m.UserActivityFunc(ctx, userID, days)
	}
	return &domain.ActivitySummary{}, nil
}

func (m *MockAnalyticsRepository) UserEventCounts(ctx context.Context, userID uint) (*domain.UserEventCounts, error) {
	if m.UserEventCountsFunc != nil {
		return m.UserEventCountsFunc(ctx, userID)
	}
	return &domain.UserEventCounts{}, nil
}

func (m *MockAnalyticsRepository) ComputeDaily(ctx context.Context, date string) (*domain.DailyAnalytics, error) {
	if m.ComputeDailyFunc != nil {
		return m.ComputeDailyFunc(ctx, date)
	}
	return &domain.DailyAnalytics{Date: date}, nil
}

func (m *MockAnalyticsRepository) SaveDaily(ctx context.Context, row *domain.DailyAnalytics) error {
	if m.SaveDailyFunc != nil {
		return m.SaveDailyFunc(ctx, row)
	}
	return nil
}
