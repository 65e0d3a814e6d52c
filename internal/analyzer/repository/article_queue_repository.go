package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ArticleQueueRepository hands scraped articles to the analysis workers.
type ArticleQueueRepository interface {
	Publish(ctx context.Context, article dto.Article) error
}

type redisArticleQueueRepository struct {
	client *redis.Client
	maxLen int64
	logger *logger.Logger
}

// NewRedisArticleQueueRepository publishes articles to the analyze stream, trimmed to about maxLen entries.
func NewRedisArticleQueueRepository(client *redis.Client, maxLen int64, log *logger.Logger) ArticleQueueRepository {
	return &redisArticleQueueRepository{client: client, maxLen: maxLen, logger: log}
}

func (r *redisArticleQueueRepository) Publish(ctx context.Context, article dto.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: common.RedisStreamArticleAnalyze,
		Values: map[string]interface{}{"payload": string(payload)},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		r.logger.ErrorContext(ctx, "Failed to enqueue article", logger.ErrorField(err), logger.StringField("article_url", article.URL))
		return fmt.Errorf("failed to enqueue article: %w", err)
	}
	return nil
}
