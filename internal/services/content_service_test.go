package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/mocks"
)

func TestContentService_List_ClampsPaging(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit", 0, 0, 50, 0},
		{"oversized limit", 1000, 0, 50, 0},
		{"negative offset", 10, -5, 10, 0},
		{"valid paging", 25, 50, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter domain.ContentFilter
			repo := &mocks.MockContentRepository{
				ListFunc: func(_ context.Context, filter domain.ContentFilter) (*domain.ContentPage, error) {
					gotFilter = filter
					return &domain.ContentPage{Limit: filter.Limit, Offset: filter.Offset}, nil
				},
			}
			svc := NewContentService(repo, &mocks.MockAnalyticsRepository{}, testLogger())

			_, err := svc.List(context.Background(), domain.ContentFilter{Limit: tt.limit, Offset: tt.offset})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if gotFilter.Limit != tt.wantLimit || gotFilter.Offset != tt.wantOffset {
				t.Errorf("filter = (%d, %d), want (%d, %d)",
					gotFilter.Limit, gotFilter.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestContentService_BySlug(t *testing.T) {
	guide := &domain.ContentItem{ID: 5, Title: "Guide", Category: "methods", Slug: "guide"}

	t.Run("signed-in reader records a view interaction", func(t *testing.T) {
		incremented := make(chan uint, 1)
		recorded := make(chan *domain.ResourceInteraction, 1)

		contentRepo := &mocks.MockContentRepository{
			FindBySlugFunc: func(context.Context, string) (*domain.ContentItem, error) {
				return guide, nil
			},
			IncrementViewCountFunc: func(_ context.Context, id uint) error {
				incremented <- id
				return nil
			},
		}
		analyticsRepo := &mocks.MockAnalyticsRepository{
			RecordInteractionFunc: func(_ context.Context, ri *domain.ResourceInteraction) error {
				recorded <- ri
				return nil
			},
		}
		svc := NewContentService(contentRepo, analyticsRepo, testLogger())

		userID := uint(7)
		item, err := svc.BySlug(context.Background(), "guide", &userID, "user_7")
		if err != nil {
			t.Fatalf("BySlug() error = %v", err)
		}
		if item.ID != 5 {
			t.Errorf("ID = %d, want 5", item.ID)
		}

		select {
		case id := <-incremented:
			if id != 5 {
				t.Errorf("incremented id = %d, want 5", id)
			}
		case <-time.After(time.Second):
			t.Fatal("view count never incremented")
		}
		select {
		case ri := <-recorded:
			if ri.InteractionType != domain.InteractionView || ri.ResourceTitle != "Guide" {
				t.Errorf("interaction = %+v", ri)
			}
		case <-time.After(time.Second):
			t.Fatal("interaction never recorded")
		}
	})

	t.Run("anonymous reader only bumps the counter", func(t *testing.T) {
		incremented := make(chan uint, 1)
		contentRepo := &mocks.MockContentRepository{
			FindBySlugFunc: func(context.Context, string) (*domain.ContentItem, error) {
				return guide, nil
			},
			IncrementViewCountFunc: func(_ context.Context, id uint) error {
				incremented <- id
				return nil
			},
		}
		analyticsRepo := &mocks.MockAnalyticsRepository{
			RecordInteractionFunc: func(context.Context, *domain.ResourceInteraction) error {
				t.Error("interaction recorded for anonymous reader")
				return nil
			},
		}
		svc := NewContentService(contentRepo, analyticsRepo, testLogger())

		if _, err := svc.BySlug(context.Background(), "guide", nil, "anon-1"); err != nil {
			t.Fatalf("BySlug() error = %v", err)
		}
		select {
		case <-incremented:
		case <-time.After(time.Second):
			t.Fatal("view count never incremented")
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc := NewContentService(&mocks.MockContentRepository{}, &mocks.MockAnalyticsRepository{}, testLogger())
		_, err := svc.BySlug(context.Background(), "missing", nil, "anon-1")
		if !errors.Is(err, domain.ErrContentNotFound) {
			t.Errorf("BySlug() error = %v, want ErrContentNotFound", err)
		}
	})
}

func TestContentService_Search(t *testing.T) {
	hits := []domain.SearchHit{
		{Item: domain.ContentItem{Slug: "a"}, Relevance: 10},
		{Item: domain.ContentItem{Slug: "b"}, Relevance: 1},
	}
	recorded := make(chan *domain.SearchQuery, 1)

	contentRepo := &mocks.MockContentRepository{
		SearchFunc: func(_ context.Context, query, category string, limit int) ([]domain.SearchHit, error) {
			if limit != 20 {
				t.Errorf("limit = %d, want clamped default 20", limit)
			}
			return hits, nil
		},
	}
	analyticsRepo := &mocks.MockAnalyticsRepository{
		RecordSearchFunc: func(_ context.Context, sq *domain.SearchQuery) error {
			recorded <- sq
			return nil
		},
	}
	svc := NewContentService(contentRepo, analyticsRepo, testLogger())

	got, err := svc.Search(context.Background(), "regression", "", 0, nil, "anon-1")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(hits) = %d, want 2", len(got))
	}

	select {
	case sq := <-recorded:
		if sq.Query != "regression" {
			t.Errorf("recorded query = %q", sq.Query)
		}
		if sq.ResultsCount != 2 {
			t.Errorf("ResultsCount = %d, want 2", sq.ResultsCount)
		}
	case <-time.After(time.Second):
		t.Fatal("search never recorded")
	}
}
