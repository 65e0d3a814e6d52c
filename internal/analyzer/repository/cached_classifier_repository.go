package repository

import (
	"context"
	"time"

	"golang-news-insight/pkg/utils"

	"github.com/patrickmn/go-cache"
)

type cachedClassifierRepository struct {
	next          ClassifierRepository
	inmemoryCache *cache.Cache
}

// NewCachedClassifierRepository memoizes classifications by sentence hash for ttl.
func NewCachedClassifierRepository(next ClassifierRepository, ttl time.Duration) ClassifierRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &cachedClassifierRepository{
		next:          next,
		inmemoryCache: cache.New(ttl, 2*ttl),
	}
}

func (r *cachedClassifierRepository) Classify(ctx context.Context, text string) (map[string]float64, error) {
	key := utils.HashString(text)
	if cached, found := r.inmemoryCache.Get(key); found {
		return copyDistribution(cached.(map[string]float64)), nil
	}

	dist, err := r.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}
	r.inmemoryCache.Set(key, copyDistribution(dist), cache.DefaultExpiration)
	return dist, nil
}

func copyDistribution(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
