package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ArticleStreamService consumes queued articles from the Redis stream.
type ArticleStreamService interface {
	// ProcessTask reads and handles at most one queued article.
	ProcessTask(ctx context.Context)
}

type articleStreamService struct {
	redisClient    *redis.Client
	articleService ArticleService
	consumerName   string
	block          time.Duration
	logger         *logger.Logger
}

// NewArticleStreamService creates a new ArticleStreamService reading as consumerName within the analyzer group.
func NewArticleStreamService(redisClient *redis.Client, articleService ArticleService, consumerName string, block time.Duration, log *logger.Logger) ArticleStreamService {
	if block <= 0 {
		block = 2 * time.Second
	}
	return &articleStreamService{
		redisClient:    redisClient,
		articleService: articleService,
		consumerName:   consumerName,
		block:          block,
		logger:         log,
	}
}

func (s *articleStreamService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: s.consumerName,
		Streams:  []string{common.RedisStreamArticleAnalyze, ">"},
		Count:    1,
		Block:    s.block,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}
	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]
	defer s.ack(message.ID)

	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var article dto.Article
	if err := json.Unmarshal([]byte(payload), &article); err != nil {
		s.logger.Error("Failed to unmarshal article", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	// A failed article is acknowledged and skipped, the rest of the stream carries on.
	if _, _, err := s.articleService.ProcessArticle(ctx, article); err != nil {
		s.logger.Error("Failed to process article", logger.ErrorField(err), logger.StringField("article_url", article.URL))
	}
}

func (s *articleStreamService) ack(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.redisClient.XAck(ctx, common.RedisStreamArticleAnalyze, common.RedisStreamGroup, id).Err(); err != nil {
		s.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.Field("message_id", id))
	}
}
