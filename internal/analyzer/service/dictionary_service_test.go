package service

import (
	"context"
	"errors"
	"testing"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDictionarySource struct {
	entries []dto.TickerEntry
	err     error
}

func (s *fakeDictionarySource) FetchEntries(context.Context) ([]dto.TickerEntry, error) {
	return s.entries, s.err
}

type fakeDictionaryCache struct {
	saved   []dto.TickerEntry
	entries []dto.TickerEntry
	loadErr error
	saveErr error
}

func (c *fakeDictionaryCache) Save(_ context.Context, entries []dto.TickerEntry) error {
	c.saved = entries
	return c.saveErr
}

func (c *fakeDictionaryCache) Load(context.Context) ([]dto.TickerEntry, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if len(c.entries) == 0 {
		return nil, repository.ErrCacheMiss
	}
	return c.entries, nil
}

type fakeDictionaryFallback struct {
	entries []dto.TickerEntry
	err     error
}

func (f *fakeDictionaryFallback) Load(context.Context) ([]dto.TickerEntry, error) {
	return f.entries, f.err
}

var (
	liveEntries     = []dto.TickerEntry{{Symbol: "AAPL", Name: "Apple Inc."}, {Symbol: "MSFT", Name: "Microsoft Corporation"}}
	cachedEntries   = []dto.TickerEntry{{Symbol: "NVDA", Name: "NVIDIA Corporation"}}
	fallbackEntries = []dto.TickerEntry{{Symbol: "TSLA", Name: "Tesla, Inc."}}
)

func TestDictionaryService_Refresh(t *testing.T) {
	fetchErr := errors.New("status 503")

	tests := []struct {
		name         string
		initial      *EntityDictionary
		source       *fakeDictionarySource
		cache        *fakeDictionaryCache
		fallback     *fakeDictionaryFallback
		wantSource   string
		tickers      int
		wantTicker   string
		wantFetchErr bool
	}{
		{
			name:       "live fetch",
			source:     &fakeDictionarySource{entries: liveEntries},
			cache:      &fakeDictionaryCache{},
			fallback:   &fakeDictionaryFallback{entries: fallbackEntries},
			wantSource: DictionarySourceLive,
			tickers:    2,
			wantTicker: "AAPL",
		},
		{
			name:         "keeps previous snapshot",
			initial:      NewEntityDictionary(liveEntries),
			source:       &fakeDictionarySource{err: fetchErr},
			cache:        &fakeDictionaryCache{entries: cachedEntries},
			fallback:     &fakeDictionaryFallback{entries: fallbackEntries},
			wantSource:   DictionarySourcePrevious,
			tickers:      2,
			wantTicker:   "MSFT",
			wantFetchErr: true,
		},
		{
			name:         "cached copy",
			source:       &fakeDictionarySource{err: fetchErr},
			cache:        &fakeDictionaryCache{entries: cachedEntries},
			fallback:     &fakeDictionaryFallback{entries: fallbackEntries},
			wantSource:   DictionarySourceCache,
			tickers:      1,
			wantTicker:   "NVDA",
			wantFetchErr: true,
		},
		{
			name:         "fallback file",
			source:       &fakeDictionarySource{err: fetchErr},
			cache:        &fakeDictionaryCache{loadErr: errors.New("redis down")},
			fallback:     &fakeDictionaryFallback{entries: fallbackEntries},
			wantSource:   DictionarySourceFallback,
			tickers:      1,
			wantTicker:   "TSLA",
			wantFetchErr: true,
		},
		{
			name:         "empty live list falls back",
			source:       &fakeDictionarySource{entries: []dto.TickerEntry{}},
			cache:        &fakeDictionaryCache{},
			fallback:     &fakeDictionaryFallback{entries: fallbackEntries},
			wantSource:   DictionarySourceFallback,
			tickers:      1,
			wantTicker:   "TSLA",
			wantFetchErr: true,
		},
		{
			name:         "nothing available",
			source:       &fakeDictionarySource{err: fetchErr},
			cache:        &fakeDictionaryCache{},
			fallback:     &fakeDictionaryFallback{err: errors.New("no such file")},
			wantSource:   DictionarySourceEmpty,
			tickers:      0,
			wantFetchErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewDictionaryStore(tt.initial)
			svc := NewDictionaryService(store, tt.source, tt.cache, tt.fallback, logger.NewNop())

			result := svc.Refresh(context.Background())
			assert.Equal(t, tt.wantSource, result.Source)
			assert.Equal(t, tt.tickers, result.Tickers)
			assert.Equal(t, tt.wantFetchErr, result.FetchError != "")

			assert.Same(t, store.Current(), svc.Current())
			assert.Equal(t, tt.tickers, svc.Current().TickerCount())
			if tt.wantTicker != "" {
				assert.True(t, svc.Current().HasTicker(tt.wantTicker))
			}
		})
	}
}

func TestDictionaryService_LiveFetchIsCached(t *testing.T) {
	cache := &fakeDictionaryCache{saveErr: errors.New("read only replica")}
	svc := NewDictionaryService(NewDictionaryStore(nil), &fakeDictionarySource{entries: liveEntries}, cache, nil, logger.NewNop())

	result := svc.Refresh(context.Background())
	assert.Equal(t, DictionarySourceLive, result.Source)
	assert.Equal(t, liveEntries, cache.saved)
}

func TestDictionaryService_NilCacheAndFallback(t *testing.T) {
	svc := NewDictionaryService(NewDictionaryStore(nil), &fakeDictionarySource{err: errors.New("offline")}, nil, nil, logger.NewNop())

	result := svc.Refresh(context.Background())
	require.Equal(t, DictionarySourceEmpty, result.Source)
	assert.True(t, svc.Current().IsEmpty())
}

func TestDictionaryService_LiveReplacesPrevious(t *testing.T) {
	store := NewDictionaryStore(NewEntityDictionary(fallbackEntries))
	svc := NewDictionaryService(store, &fakeDictionarySource{entries: liveEntries}, nil, nil, logger.NewNop())

	svc.Refresh(context.Background())
	assert.False(t, svc.Current().HasTicker("TSLA"))
	assert.True(t, svc.Current().HasTicker("AAPL"))
}
