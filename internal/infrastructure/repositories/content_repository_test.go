package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

func seedContent(t *testing.T, db *gorm.DB, items ...DBContentItem) {
	t.Helper()
	for i := range items {
		if items[i].Status == "" {
			items[i].Status = "published"
		}
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("failed to seed content: %v", err)
		}
	}
}

func TestContentRepositoryImpl_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, &DBContentItem{})
	repo := NewContentRepository(db)

	now := time.Now()
	seedContent(t, db,
		DBContentItem{Title: "Old Guide", Category: "methods", Slug: "old-guide", UpdatedAt: now.Add(-48 * time.Hour)},
		DBContentItem{Title: "New Guide", Category: "methods", Slug: "new-guide", UpdatedAt: now},
		DBContentItem{Title: "Featured Guide", Category: "tools", Slug: "featured-guide", Featured: true, UpdatedAt: now.Add(-24 * time.Hour)},
		DBContentItem{Title: "Draft Guide", Category: "methods", Slug: "draft-guide", Status: "draft", UpdatedAt: now},
	)

	t.Run("featured first then recency, drafts hidden", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ContentFilter{Limit: 10})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if page.Total != 3 {
			t.Errorf("Total = %d, want 3", page.Total)
		}
		if len(page.Items) != 3 {
			t.Fatalf("len(Items) = %d, want 3", len(page.Items))
		}
		if page.Items[0].Slug != "featured-guide" {
			t.Errorf("first item = %q, want featured-guide", page.Items[0].Slug)
		}
		if page.Items[1].Slug != "new-guide" {
			t.Errorf("second item = %q, want new-guide", page.Items[1].Slug)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ContentFilter{Category: "methods", Limit: 10})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if page.Total != 2 {
			t.Errorf("Total = %d, want 2", page.Total)
		}
	})

	t.Run("pagination keeps the full count", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ContentFilter{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if page.Total != 3 {
			t.Errorf("Total = %d, want 3", page.Total)
		}
		if len(page.Items) != 1 {
			t.Errorf("len(Items) = %d, want 1", len(page.Items))
		}
	})

	t.Run("featured filter", func(t *testing.T) {
		featured := true
		page, err := repo.List(ctx, domain.ContentFilter{Featured: &featured, Limit: 10})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if page.Total != 1 || page.Items[0].Slug != "featured-guide" {
			t.Errorf("featured filter returned %d items", page.Total)
		}
	})
}

func TestContentRepositoryImpl_FindBySlug(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, &DBContentItem{})
	repo := NewContentRepository(db)
	seedContent(t, db,
		DBContentItem{Title: "Guide", Slug: "guide", Body: "full text"},
		DBContentItem{Title: "Draft", Slug: "draft", Status: "draft"},
	)

	t.Run("published slug", func(t *testing.T) {
		item, err := repo.FindBySlug(ctx, "guide")
		if err != nil {
			t.Fatalf("FindBySlug() error = %v", err)
		}
		if item.Body != "full text" {
			t.Errorf("Body = %q", item.Body)
		}
	})

	t.Run("draft slug is not found", func(t *testing.T) {
		_, err := repo.FindBySlug(ctx, "draft")
		if !errors.Is(err, domain.ErrContentNotFound) {
			t.Errorf("FindBySlug() error = %v, want ErrContentNotFound", err)
		}
	})
}

func TestContentRepositoryImpl_IncrementViewCount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, &DBContentItem{})
	repo := NewContentRepository(db)
	seedContent(t, db, DBContentItem{Title: "Guide", Slug: "guide", ViewCount: 41})

	item, err := repo.FindBySlug(ctx, "guide")
	if err != nil {
		t.Fatalf("FindBySlug() error = %v", err)
	}
	if err := repo.IncrementViewCount(ctx, item.ID); err != nil {
		t.Fatalf("IncrementViewCount() error = %v", err)
	}
	updated, err := repo.FindBySlug(ctx, "guide")
	if err != nil {
		t.Fatalf("FindBySlug() error = %v", err)
	}
	if updated.ViewCount != 42 {
		t.Errorf("ViewCount = %d, want 42", updated.ViewCount)
	}
}

func TestContentRepositoryImpl_Categories(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, &DBContentItem{})
	repo := NewContentRepository(db)
	seedContent(t, db,
		DBContentItem{Title: "A", Category: "methods", Slug: "a"},
		DBContentItem{Title: "B", Category: "methods", Slug: "b"},
		DBContentItem{Title: "C", Category: "tools", Slug: "c"},
		DBContentItem{Title: "D", Category: "tools", Slug: "d", Status: "draft"},
	)

	summaries, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}
	if summaries[0].Category != "methods" || summaries[0].Count != 2 {
		t.Errorf("summaries[0] = %+v", summaries[0])
	}
	if summaries[1].Category != "tools" || summaries[1].Count != 1 {
		t.Errorf("summaries[1] = %+v, drafts must not count", summaries[1])
	}
}

func TestContentRepositoryImpl_Search(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, &DBContentItem{})
	repo := NewContentRepository(db)
	seedContent(t, db,
		DBContentItem{Title: "Regression Basics", Category: "methods", Slug: "title-hit", Body: "intro text"},
		DBContentItem{Title: "Choosing a Model", Category: "methods", Slug: "desc-hit", Description: "covers regression tradeoffs"},
		DBContentItem{Title: "Field Notes", Category: "tools", Slug: "body-hit", Body: "a short aside on regression"},
		DBContentItem{Title: "Unrelated", Category: "tools", Slug: "miss", Body: "nothing relevant"},
	)

	t.Run("relevance orders title over description over body", func(t *testing.T) {
		hits, err := repo.Search(ctx, "regression", "", 20)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(hits) != 3 {
			t.Fatalf("len(hits) = %d, want 3", len(hits))
		}
		wantOrder := []string{"title-hit", "desc-hit", "body-hit"}
		wantScores := []int{10, 5, 1}
		for i, hit := range hits {
			if hit.Item.Slug != wantOrder[i] {
				t.Errorf("hits[%d] = %q, want %q", i, hit.Item.Slug, wantOrder[i])
			}
			if hit.Relevance != wantScores[i] {
				t.Errorf("hits[%d].Relevance = %d, want %d", i, hit.Relevance, wantScores[i])
			}
		}
	})

	t.Run("category scoping", func(t *testing.T) {
		hits, err := repo.Search(ctx, "regression", "tools", 20)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(hits) != 1 || hits[0].Item.Slug != "body-hit" {
			t.Errorf("hits = %d, want just body-hit", len(hits))
		}
	})

	t.Run("no matches", func(t *testing.T) {
		hits, err := repo.Search(ctx, "nonexistent-term", "", 20)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("len(hits) = %d, want 0", len(hits))
		}
	})
}
