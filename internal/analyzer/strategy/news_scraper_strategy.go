package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// NewsScraperStrategy reads the configured feeds and queues new articles for analysis.
type NewsScraperStrategy struct {
	cfg           config.Scraper
	logger        *logger.Logger
	sourceRepo    repository.ArticleSourceRepository
	articleRepo   repository.NewsArticleRepository
	queueRepo     repository.ArticleQueueRepository
	inmemoryCache *cache.Cache
	now           func() time.Time
}

// NewNewsScraperStrategy creates a new instance of NewsScraperStrategy.
func NewNewsScraperStrategy(cfg *config.Config, log *logger.Logger, sourceRepo repository.ArticleSourceRepository, articleRepo repository.NewsArticleRepository, queueRepo repository.ArticleQueueRepository) *NewsScraperStrategy {
	return &NewsScraperStrategy{
		cfg:           cfg.Scraper,
		logger:        log,
		sourceRepo:    sourceRepo,
		articleRepo:   articleRepo,
		queueRepo:     queueRepo,
		inmemoryCache: cache.New(24*time.Hour, time.Hour),
		now:           time.Now,
	}
}

// GetType returns the job type this strategy handles.
func (s *NewsScraperStrategy) GetType() JobType {
	return JobTypeNewsScraper
}

type scrapeResult struct {
	Status      string   `json:"status"`
	FeedURL     string   `json:"feed_url"`
	Queued      int      `json:"queued"`
	FailedLinks []string `json:"failed_links"`
	Errors      []string `json:"errors"`
}

// Execute scrapes every feed concurrently and returns a JSON report per feed.
func (s *NewsScraperStrategy) Execute(ctx context.Context) (string, error) {
	maxConcurrent := s.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	var (
		results   []scrapeResult
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, maxConcurrent)
	)

	for _, feedURL := range s.cfg.FeedURLs {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		wg.Add(1)
		utils.GoSafe(s.logger, func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := s.scrapeFeed(ctx, feedURL)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].FeedURL < results[j].FeedURL })
	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}

func (s *NewsScraperStrategy) scrapeFeed(ctx context.Context, feedURL string) scrapeResult {
	result := scrapeResult{FeedURL: feedURL, FailedLinks: []string{}, Errors: []string{}}
	s.logger.Info("Processing RSS feed", logger.StringField("url", feedURL))

	articles, err := s.sourceRepo.FetchFeed(ctx, feedURL)
	if err != nil {
		result.Status = FAILED
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].PublishedAt == nil || articles[j].PublishedAt == nil {
			return articles[j].PublishedAt == nil && articles[i].PublishedAt != nil
		}
		return articles[i].PublishedAt.After(*articles[j].PublishedAt)
	})

	filtered, err := s.filterNewArticles(ctx, articles)
	if err != nil {
		result.Status = FAILED
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	s.logger.Info("Filtered news items",
		logger.IntField("original_count", len(articles)),
		logger.IntField("filtered_count", len(filtered)),
		logger.StringField("url", feedURL),
	)

	for _, article := range filtered {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		if s.cfg.MaxNews > 0 && result.Queued >= s.cfg.MaxNews {
			break
		}

		content, err := s.sourceRepo.FetchContent(ctx, article.URL)
		if err != nil {
			result.FailedLinks = append(result.FailedLinks, article.URL)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		article.Content = content

		if err := s.queueRepo.Publish(ctx, article); err != nil {
			result.FailedLinks = append(result.FailedLinks, article.URL)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		s.inmemoryCache.SetDefault(article.URL, true)
		result.Queued++
		s.sleep(ctx)
	}

	switch {
	case len(result.FailedLinks) == 0:
		result.Status = SUCCESS
	case result.Queued == 0:
		result.Status = SKIPPED
	default:
		result.Status = FAILED
	}
	return result
}

// filterNewArticles drops stale, blacklisted, recently queued and already stored articles.
func (s *NewsScraperStrategy) filterNewArticles(ctx context.Context, articles []dto.Article) ([]dto.Article, error) {
	var candidates []dto.Article
	var urls []string
	cutoff := s.now().Add(-time.Duration(s.cfg.MaxNewsAgeInDays) * 24 * time.Hour)

	for _, article := range articles {
		if _, found := s.inmemoryCache.Get(article.URL); found {
			continue
		}
		if s.cfg.MaxNewsAgeInDays > 0 && (article.PublishedAt == nil || article.PublishedAt.Before(cutoff)) {
			continue
		}
		if s.isBlacklisted(article.URL) {
			s.logger.Warn("Skip news from blacklisted domain", logger.StringField("url", article.URL))
			continue
		}
		candidates = append(candidates, article)
		urls = append(urls, article.URL)
	}

	existing, err := s.articleRepo.FindExistingURLs(ctx, urls)
	if err != nil {
		s.logger.Error("Failed to fetch existing news", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to fetch existing news: %w", err)
	}

	filtered := make([]dto.Article, 0, len(candidates))
	for _, article := range candidates {
		if existing[article.URL] {
			s.inmemoryCache.SetDefault(article.URL, true)
			continue
		}
		filtered = append(filtered, article)
	}
	return filtered, nil
}

func (s *NewsScraperStrategy) isBlacklisted(articleURL string) bool {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return true
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	for _, domain := range s.cfg.BlacklistedDomains {
		domain = strings.TrimPrefix(domain, "www.")
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (s *NewsScraperStrategy) sleep(ctx context.Context) {
	if s.cfg.DelayInterval <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.DelayInterval):
	}
}
