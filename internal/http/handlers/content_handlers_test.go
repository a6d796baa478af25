package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/mocks"
	"github.com/keaton678/research-hub/internal/services"
)

func contentRouter(contentRepo *mocks.MockContentRepository) *gin.Engine {
	svc := services.NewContentService(contentRepo, &mocks.MockAnalyticsRepository{},
		slog.New(slog.DiscardHandler))
	h := NewContentHandlers(svc)

	router := gin.New()
	content := router.Group("/api/content")
	{
		content.GET("", h.List)
		content.GET("/search", h.Search)
		content.GET("/meta/categories", h.Categories)
		content.GET("/category/:category", h.ByCategory)
		content.GET("/:slug", h.BySlug)
	}
	return router
}

func getRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestContentHandlers_List(t *testing.T) {
	repo := &mocks.MockContentRepository{
		ListFunc: func(_ context.Context, filter domain.ContentFilter) (*domain.ContentPage, error) {
			return &domain.ContentPage{
				Items:  []domain.ContentItem{{ID: 1, Title: "Guide", Slug: "guide"}},
				Total:  11,
				Limit:  filter.Limit,
				Offset: filter.Offset,
			}, nil
		},
	}
	w := getRequest(contentRouter(repo), "/api/content?limit=10")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(11), pagination["total"])
	assert.Equal(t, true, pagination["hasMore"])
}

func TestContentHandlers_BySlug(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mocks.MockContentRepository{
			FindBySlugFunc: func(_ context.Context, slug string) (*domain.ContentItem, error) {
				return &domain.ContentItem{ID: 1, Title: "Guide", Slug: slug}, nil
			},
		}
		w := getRequest(contentRouter(repo), "/api/content/guide")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"slug":"guide"`)
	})

	t.Run("not found", func(t *testing.T) {
		w := getRequest(contentRouter(&mocks.MockContentRepository{}), "/api/content/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentHandlers_Search(t *testing.T) {
	t.Run("missing q", func(t *testing.T) {
		w := getRequest(contentRouter(&mocks.MockContentRepository{}), "/api/content/search")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("results carry relevance", func(t *testing.T) {
		repo := &mocks.MockContentRepository{
			SearchFunc: func(_ context.Context, query, _ string, _ int) ([]domain.SearchHit, error) {
				return []domain.SearchHit{
					{Item: domain.ContentItem{ID: 1, Title: "Regression Basics"}, Relevance: 10},
				}, nil
			},
		}
		w := getRequest(contentRouter(repo), "/api/content/search?q=regression")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "regression", body["query"])
		assert.Equal(t, float64(1), body["count"])
		results, ok := body["results"].([]any)
		require.True(t, ok)
		first, ok := results[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), first["relevance"])
	})
}

func TestContentHandlers_Categories(t *testing.T) {
	repo := &mocks.MockContentRepository{
		CategoriesFunc: func(context.Context) ([]domain.CategorySummary, error) {
			return []domain.CategorySummary{{Category: "methods", Count: 4}}, nil
		},
	}
	w := getRequest(contentRouter(repo), "/api/content/meta/categories")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"methods"`)
}
