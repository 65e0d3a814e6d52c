package service

import (
	"context"
	"errors"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
)

// Where a refreshed dictionary came from.
const (
	DictionarySourceLive     = "live"
	DictionarySourcePrevious = "previous"
	DictionarySourceCache    = "cache"
	DictionarySourceFallback = "fallback"
	DictionarySourceEmpty    = "empty"
)

// RefreshResult describes one dictionary refresh.
type RefreshResult struct {
	Source     string `json:"source"`
	Tickers    int    `json:"tickers"`
	FetchError string `json:"fetch_error,omitempty"`
}

// DictionaryService owns the dictionary snapshot and its refresh.
type DictionaryService interface {
	DictionaryProvider
	// Refresh never leaves the service without a snapshot. A failed live fetch falls back to the
	// previous snapshot, then the cached copy, then the static file, then an empty dictionary.
	Refresh(ctx context.Context) RefreshResult
}

type dictionaryService struct {
	store    *DictionaryStore
	source   repository.DictionarySourceRepository
	cache    repository.DictionaryCacheRepository
	fallback repository.DictionaryFallbackRepository
	logger   *logger.Logger
}

// NewDictionaryService creates a dictionary service publishing into store. cache and fallback may be nil.
func NewDictionaryService(store *DictionaryStore, source repository.DictionarySourceRepository, cache repository.DictionaryCacheRepository, fallback repository.DictionaryFallbackRepository, log *logger.Logger) DictionaryService {
	return &dictionaryService{
		store:    store,
		source:   source,
		cache:    cache,
		fallback: fallback,
		logger:   log,
	}
}

func (s *dictionaryService) Current() *EntityDictionary {
	return s.store.Current()
}

func (s *dictionaryService) Refresh(ctx context.Context) RefreshResult {
	entries, err := s.source.FetchEntries(ctx)
	if err == nil && len(entries) > 0 {
		dict := s.publish(entries)
		if s.cache != nil {
			if cacheErr := s.cache.Save(ctx, dict.Entries()); cacheErr != nil {
				s.logger.WarnContext(ctx, "Failed to cache ticker list", logger.ErrorField(cacheErr))
			}
		}
		s.logger.InfoContext(ctx, "Ticker dictionary refreshed", logger.IntField("tickers", dict.TickerCount()))
		return RefreshResult{Source: DictionarySourceLive, Tickers: dict.TickerCount()}
	}
	if err == nil {
		err = errors.New("ticker list is empty")
	}
	s.logger.ErrorContext(ctx, "Failed to refresh ticker dictionary, falling back", logger.ErrorField(err))
	result := RefreshResult{FetchError: err.Error()}

	if current := s.store.Current(); !current.IsEmpty() {
		result.Source = DictionarySourcePrevious
		result.Tickers = current.TickerCount()
		return result
	}

	if entries, ok := s.loadCached(ctx); ok {
		result.Source = DictionarySourceCache
		result.Tickers = s.publish(entries).TickerCount()
		return result
	}

	if entries, ok := s.loadFallback(ctx); ok {
		result.Source = DictionarySourceFallback
		result.Tickers = s.publish(entries).TickerCount()
		return result
	}

	s.logger.WarnContext(ctx, "No ticker dictionary available, company matching is disabled")
	s.store.Swap(NewEntityDictionary(nil))
	result.Source = DictionarySourceEmpty
	return result
}

func (s *dictionaryService) publish(entries []dto.TickerEntry) *EntityDictionary {
	dict := NewEntityDictionary(entries)
	s.store.Swap(dict)
	return dict
}

func (s *dictionaryService) loadCached(ctx context.Context) ([]dto.TickerEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	entries, err := s.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "Failed to load cached ticker list", logger.ErrorField(err))
		}
		return nil, false
	}
	return entries, len(entries) > 0
}

func (s *dictionaryService) loadFallback(ctx context.Context) ([]dto.TickerEntry, bool) {
	if s.fallback == nil {
		return nil, false
	}
	entries, err := s.fallback.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load fallback ticker list", logger.ErrorField(err))
		return nil, false
	}
	return entries, len(entries) > 0
}
