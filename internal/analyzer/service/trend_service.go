package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"
)

var (
	ErrTickerNotFound  = errors.New("ticker not found")
	ErrInvalidInterval = errors.New("invalid interval, must be one of 1d, 1wk, 1mo")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidPeriod   = errors.New("period_end must be after period_start")
)

// Trend bucket sizes.
const (
	IntervalDay   = "1d"
	IntervalWeek  = "1wk"
	IntervalMonth = "1mo"
)

// SentimentTrendService aggregates stored insight scores over time.
type SentimentTrendService interface {
	// GetTrend averages the ticker's insight scores per day, week (starting Monday) or month.
	GetTrend(ctx context.Context, ticker, periodStart, periodEnd, interval string) ([]dto.TrendPoint, error)
}

type sentimentTrendService struct {
	articleRepo  repository.NewsArticleRepository
	dictionaries DictionaryProvider
	logger       *logger.Logger
}

// NewSentimentTrendService creates a new instance of SentimentTrendService.
func NewSentimentTrendService(articleRepo repository.NewsArticleRepository, dictionaries DictionaryProvider, log *logger.Logger) SentimentTrendService {
	return &sentimentTrendService{articleRepo: articleRepo, dictionaries: dictionaries, logger: log}
}

func (s *sentimentTrendService) GetTrend(ctx context.Context, ticker, periodStart, periodEnd, interval string) ([]dto.TrendPoint, error) {
	if !s.dictionaries.Current().HasTicker(ticker) {
		return nil, ErrTickerNotFound
	}
	if interval == "" {
		interval = IntervalDay
	}
	if interval != IntervalDay && interval != IntervalWeek && interval != IntervalMonth {
		return nil, ErrInvalidInterval
	}

	start, err := utils.ParseDate(periodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	end, err := utils.ParseDate(periodEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, ErrInvalidPeriod
	}

	rows, err := s.articleRepo.FindTickerInsights(ctx, ticker, start, end)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to find ticker insights", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, fmt.Errorf("failed to find ticker insights: %w", err)
	}

	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		if row.PublishedAt == nil {
			continue
		}
		key := bucketKey(*row.PublishedAt, interval)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.sum += row.SentimentScore
	}

	points := make([]dto.TrendPoint, 0, len(buckets))
	for key, b := range buckets {
		points = append(points, dto.TrendPoint{S: utils.Round(b.sum/float64(b.count), 3), T: key})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].T < points[j].T })
	return points, nil
}

func bucketKey(t time.Time, interval string) string {
	switch interval {
	case IntervalWeek:
		return utils.StartOfWeek(t).Format("2006-01-02")
	case IntervalMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
