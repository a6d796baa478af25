package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/domain"
)

// ContentRepositoryImpl implements domain.ContentRepository using GORM.
// Every query is scoped to published items; drafts never leave the table.
type ContentRepositoryImpl struct {
	db *gorm.DB
}

// DBContentItem is the database model for ContentItem.
type DBContentItem struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255"`
	Category    string `gorm:"index;size:100"`
	Description string `gorm:"type:text"`
	Body        string `gorm:"type:text;column:content"`
	Slug        string `gorm:"uniqueIndex;size:255"`
	Status      string `gorm:"index;size:20"`
	Featured    bool
	ViewCount   int64
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (DBContentItem) TableName() string {
	return "content_items"
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *gorm.DB) domain.ContentRepository {
	return &ContentRepositoryImpl{db: db}
}

func (r *ContentRepositoryImpl) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&DBContentItem{}).Where("status = ?", "published")
}

// List implements domain.ContentRepository.
func (r *ContentRepositoryImpl) List(ctx context.Context, filter domain.ContentFilter) (*domain.ContentPage, error) {
	query := r.published(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbItems []DBContentItem
	err := query.
		Order("featured DESC, updated_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&dbItems).Error
	if err != nil {
		return nil, err
	}

	return &domain.ContentPage{
		Items:  r.dbToDomainSlice(dbItems),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// FindBySlug implements domain.ContentRepository.
func (r *ContentRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.ContentItem, error) {
	var dbItem DBContentItem
	err := r.published(ctx).Where("slug = ?", slug).First(&dbItem).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrContentNotFound
		}
		return nil, err
	}
	item := r.dbToDomain(&dbItem)
	return &item, nil
}

// ListByCategory implements domain.ContentRepository.
func (r *ContentRepositoryImpl) ListByCategory(ctx context.Context, category string, limit, offset int) (*domain.ContentPage, error) {
	return r.List(ctx, domain.ContentFilter{Category: category, Limit: limit, Offset: offset})
}

// IncrementViewCount implements domain.ContentRepository.
func (r *ContentRepositoryImpl) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBContentItem{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Categories implements domain.ContentRepository.
func (r *ContentRepositoryImpl) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	var summaries []domain.CategorySummary
	err := r.published(ctx).
		Select("category, COUNT(*) AS count, MAX(updated_at) AS last_updated").
		Group("category").
		Order("category ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// searchRow carries a content row plus its computed relevance.
type searchRow struct {
	DBContentItem
	Relevance int
}

// Search implements domain.ContentRepository. Relevance is computed in
// SQL: a title match scores 10, a description match 5 and a body match 1.
func (r *ContentRepositoryImpl) Search(ctx context.Context, query, category string, limit int) ([]domain.SearchHit, error) {
	pattern := "%" + query + "%"
	q := r.published(ctx).
		Select(`*,
			(CASE WHEN title LIKE ? THEN 10 ELSE 0 END) +
			(CASE WHEN description LIKE ? THEN 5 ELSE 0 END) +
			(CASE WHEN content LIKE ? THEN 1 ELSE 0 END) AS relevance`,
			pattern, pattern, pattern).
		Where("(title LIKE ? OR description LIKE ? OR content LIKE ?)", pattern, pattern, pattern)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []searchRow
	err := q.Order("relevance DESC, view_count DESC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, 0, len(rows))
	for i := range rows {
		hits = append(hits, domain.SearchHit{
			Item:      r.dbToDomain(&rows[i].DBContentItem),
			Relevance: rows[i].Relevance,
		})
	}
	return hits, nil
}

func (r *ContentRepositoryImpl) dbToDomain(dbItem *DBContentItem) domain.ContentItem {
	return domain.ContentItem{
		ID:          dbItem.ID,
		Title:       dbItem.Title,
		Category:    dbItem.Category,
		Description: dbItem.Description,
		Body:        dbItem.Body,
		Slug:        dbItem.Slug,
		Status:      dbItem.Status,
		Featured:    dbItem.Featured,
		ViewCount:   dbItem.ViewCount,
		PublishedAt: dbItem.PublishedAt,
		CreatedAt:   dbItem.CreatedAt,
		UpdatedAt:   dbItem.UpdatedAt,
	}
}

func (r *ContentRepositoryImpl) dbToDomainSlice(dbItems []DBContentItem) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(dbItems))
	for i := range dbItems {
		items = append(items, r.dbToDomain(&dbItems[i]))
	}
	return items
}
