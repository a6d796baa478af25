package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/keaton678/research-hub/domain"
)

// ContentServiceImpl serves the catalog and feeds the analytics event
// tables as a side effect of reads. Tracking writes happen off the
// request path and never fail a response.
type ContentServiceImpl struct {
	contentRepo   domain.ContentRepository
	analyticsRepo domain.AnalyticsRepository
	logger        *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(
	contentRepo domain.ContentRepository,
	analyticsRepo domain.AnalyticsRepository,
	logger *slog.Logger,
) *ContentServiceImpl {
	return &ContentServiceImpl{
		contentRepo:   contentRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

const trackTimeout = 5 * time.Second

// List returns a page of the published catalog.
func (s *ContentServiceImpl) List(ctx context.Context, filter domain.ContentFilter) (*domain.ContentPage, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.contentRepo.List(ctx, filter)
}

// BySlug returns one published item, bumps its view counter and records a
// view interaction for signed-in readers.
func (s *ContentServiceImpl) BySlug(ctx context.Context, slug string, userID *uint, sessionID string) (*domain.ContentItem, error) {
	item, err := s.contentRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		if err := s.contentRepo.IncrementViewCount(ctx, item.ID); err != nil {
			s.logger.Warn("failed to increment view count",
				slog.String("slug", slug), slog.Any("error", err))
		}
		if userID != nil {
			err := s.analyticsRepo.RecordInteraction(ctx, &domain.ResourceInteraction{
				UserID:           userID,
				SessionID:        sessionID,
				ResourceCategory: item.Category,
				ResourceTitle:    item.Title,
				InteractionType:  domain.InteractionView,
			})
			if err != nil {
				s.logger.Warn("failed to record view interaction",
					slog.String("slug", slug), slog.Any("error", err))
			}
		}
	}()

	return item, nil
}

// ByCategory returns a page of one category.
func (s *ContentServiceImpl) ByCategory(ctx context.Context, category string, limit, offset int) (*domain.ContentPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.contentRepo.ListByCategory(ctx, category, limit, offset)
}

// Categories returns the category summaries.
func (s *ContentServiceImpl) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	return s.contentRepo.Categories(ctx)
}

// Search runs a relevance-ranked catalog search and records the query.
func (s *ContentServiceImpl) Search(ctx context.Context, query, category string, limit int, userID *uint, sessionID string) ([]domain.SearchHit, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	hits, err := s.contentRepo.Search(ctx, query, category, limit)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		err := s.analyticsRepo.RecordSearch(ctx, &domain.SearchQuery{
			UserID:       userID,
			SessionID:    sessionID,
			Query:        query,
			ResultsCount: len(hits),
		})
		if err != nil {
			s.logger.Warn("failed to record search query",
				slog.String("query", query), slog.Any("error", err))
		}
	}()

	return hits, nil
}
