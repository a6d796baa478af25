package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/keaton678/research-hub/domain"
)

// Dashboard is the admin analytics rollup response.
type Dashboard struct {
	Users          *domain.UserStats      `json:"users"`
	PopularContent []domain.PopularItem   `json:"popularContent"`
	TopSearches    []domain.QueryCount    `json:"topSearches"`
	PageViewTrends []domain.PageViewTrend `json:"pageViewTrends"`
	Period         int                    `json:"periodDays"`
}

// PublicStats is the unauthenticated subset of platform statistics.
type PublicStats struct {
	TotalUsers     int64                `json:"totalUsers"`
	PopularContent []domain.PopularItem `json:"popularContent"`
}

// AnalyticsServiceImpl records usage events and serves the rollups.
type AnalyticsServiceImpl struct {
	analyticsRepo domain.AnalyticsRepository
	logger        *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analyticsRepo domain.AnalyticsRepository, logger *slog.Logger) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo, logger: logger}
}

// TrackPageView records one page load.
func (s *AnalyticsServiceImpl) TrackPageView(ctx context.Context, pv *domain.PageView) error {
	return s.analyticsRepo.RecordPageView(ctx, pv)
}

// TrackInteraction records one resource interaction.
func (s *AnalyticsServiceImpl) TrackInteraction(ctx context.Context, ri *domain.ResourceInteraction) error {
	switch ri.InteractionType {
	case domain.InteractionView, domain.InteractionExpand, domain.InteractionLink,
		domain.InteractionBookmark, domain.InteractionShare:
	default:
		return fmt.Errorf("%w: unknown interaction type %q", domain.ErrValidation, ri.InteractionType)
	}
	return s.analyticsRepo.RecordInteraction(ctx, ri)
}

// TrackSearch records one search query.
func (s *AnalyticsServiceImpl) TrackSearch(ctx context.Context, sq *domain.SearchQuery) error {
	if sq.Query == "" {
		return fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	return s.analyticsRepo.RecordSearch(ctx, sq)
}

// Dashboard assembles the admin rollup for the trailing days.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, days int) (*Dashboard, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	users, err := s.analyticsRepo.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.analyticsRepo.PopularContent(ctx, days)
	if err != nil {
		return nil, err
	}
	searches, err := s.analyticsRepo.TopSearches(ctx, days)
	if err != nil {
		return nil, err
	}
	trends, err := s.analyticsRepo.PageViewTrends(ctx, days)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:          users,
		PopularContent: popular,
		TopSearches:    searches,
		PageViewTrends: trends,
		Period:         days,
	}, nil
}

// Public returns the stats safe to expose without authentication.
func (s *AnalyticsServiceImpl) Public(ctx context.Context) (*PublicStats, error) {
	users, err := s.analyticsRepo.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.analyticsRepo.PopularContent(ctx, 7)
	if err != nil {
		return nil, err
	}
	return &PublicStats{
		TotalUsers:     users.TotalUsers,
		PopularContent: popular,
	}, nil
}

// AggregateDaily computes and stores the rollup row for one calendar day
// in YYYY-MM-DD form. Re-running it for the same day replaces the row.
func (s *AnalyticsServiceImpl) AggregateDaily(ctx context.Context, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: invalid date %q", domain.ErrValidation, date)
	}
	row, err := s.analyticsRepo.ComputeDaily(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to compute daily rollup: %w", err)
	}
	if err := s.analyticsRepo.SaveDaily(ctx, row); err != nil {
		return fmt.Errorf("failed to save daily rollup: %w", err)
	}
	s.logger.Info("daily analytics aggregated",
		slog.String("date", date),
		slog.Int64("page_views", row.TotalPageViews))
	return nil
}
