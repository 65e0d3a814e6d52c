package repository

import (
	"context"
	"fmt"
	"time"

	"golang-news-insight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsArticleRepository defines the interface for interacting with analyzed articles.
type NewsArticleRepository interface {
	// CreateIgnoreConflict stores the article with its insights unless the article URL already exists.
	// It reports whether a row was inserted.
	CreateIgnoreConflict(ctx context.Context, article *entity.NewsArticle) (bool, error)
	FindExistingURLs(ctx context.Context, urls []string) (map[string]bool, error)
	FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsArticle, error)
	// FindTickerInsights returns insights of ticker published within [start, end] (whole days, either
	// bound optional), oldest first.
	FindTickerInsights(ctx context.Context, ticker string, start, end *time.Time) ([]entity.TickerInsight, error)
}

// NewNewsArticleRepository creates a new instance of NewsArticleRepository.
func NewNewsArticleRepository(db *gorm.DB) NewsArticleRepository {
	return &newsArticleRepository{
		db: db,
	}
}

type newsArticleRepository struct {
	db *gorm.DB
}

func (r *newsArticleRepository) CreateIgnoreConflict(ctx context.Context, article *entity.NewsArticle) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insights := article.Insights
		article.Insights = nil
		defer func() { article.Insights = insights }()

		txInner := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_url"}},
			DoNothing: true,
		}).Create(article)
		if txInner.Error != nil {
			return txInner.Error
		}
		if txInner.RowsAffected == 0 {
			return nil
		}
		created = true

		if len(insights) == 0 {
			return nil
		}
		for i := range insights {
			insights[i].NewsArticleID = article.ID
		}
		if err := tx.Create(&insights).Error; err != nil {
			return fmt.Errorf("insert insights error: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *newsArticleRepository) FindExistingURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(urls))
	if len(urls) == 0 {
		return existing, nil
	}

	var found []string
	err := r.db.WithContext(ctx).Model(&entity.NewsArticle{}).
		Where("article_url IN ?", urls).
		Pluck("article_url", &found).Error
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		existing[u] = true
	}
	return existing, nil
}

func (r *newsArticleRepository) FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsArticle, error) {
	var articles []entity.NewsArticle
	q := r.db.WithContext(ctx).
		Preload("Insights", func(db *gorm.DB) *gorm.DB { return db.Order("insights.id ASC") }).
		Where("id IN (?)", r.db.Model(&entity.Insight{}).Select("news_article_id").Where("ticker = ?", ticker)).
		Order("published_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *newsArticleRepository) FindTickerInsights(ctx context.Context, ticker string, start, end *time.Time) ([]entity.TickerInsight, error) {
	var rows []entity.TickerInsight
	q := r.db.WithContext(ctx).
		Table("insights AS i").
		Select("i.ticker, i.sentiment, i.sentiment_score, na.published_at").
		Joins("JOIN news_articles AS na ON na.id = i.news_article_id").
		Where("i.ticker = ?", ticker).
		Where("na.published_at IS NOT NULL")
	if start != nil {
		q = q.Where("na.published_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("na.published_at < ?", end.AddDate(0, 0, 1))
	}
	if err := q.Order("na.published_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
