package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// DictionaryCacheRepository keeps the last successfully fetched ticker list.
type DictionaryCacheRepository interface {
	Save(ctx context.Context, entries []dto.TickerEntry) error
	// Load returns ErrCacheMiss when nothing is cached.
	Load(ctx context.Context) ([]dto.TickerEntry, error)
}

type redisDictionaryCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisDictionaryCacheRepository stores the ticker list as JSON under a single key.
func NewRedisDictionaryCacheRepository(client *redis.Client, ttl time.Duration, log *logger.Logger) DictionaryCacheRepository {
	return &redisDictionaryCacheRepository{client: client, ttl: ttl, logger: log}
}

func (r *redisDictionaryCacheRepository) Save(ctx context.Context, entries []dto.TickerEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal ticker entries: %w", err)
	}
	if err := r.client.Set(ctx, common.RedisKeyDictionarySnapshot, payload, r.ttl).Err(); err != nil {
		r.logger.ErrorContext(ctx, "Failed to cache ticker entries", logger.ErrorField(err))
		return fmt.Errorf("failed to cache ticker entries: %w", err)
	}
	return nil
}

func (r *redisDictionaryCacheRepository) Load(ctx context.Context) ([]dto.TickerEntry, error) {
	payload, err := r.client.Get(ctx, common.RedisKeyDictionarySnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read cached ticker entries", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to read cached ticker entries: %w", err)
	}

	var entries []dto.TickerEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached ticker entries: %w", err)
	}
	return entries, nil
}
