package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/entity"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/telegram"
	"golang-news-insight/pkg/utils"

	"gorm.io/datatypes"
)

// ErrEmptyArticle is returned for articles without body or description.
var ErrEmptyArticle = errors.New("article has no text to analyze")

// ArticleService analyzes scraped articles and serves the stored results.
type ArticleService interface {
	// ProcessArticle analyzes and stores one article. It reports false when the URL was already stored.
	ProcessArticle(ctx context.Context, article dto.Article) (*entity.NewsArticle, bool, error)
	FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsArticle, error)
}

type articleService struct {
	pipeline    InsightPipeline
	articleRepo repository.NewsArticleRepository
	notifier    telegram.Notifier
	minAbsScore float64
	logger      *logger.Logger
}

// NewArticleService creates a new instance of ArticleService. Insights whose absolute score reaches
// minAbsScore are sent to notifier.
func NewArticleService(pipeline InsightPipeline, articleRepo repository.NewsArticleRepository, notifier telegram.Notifier, minAbsScore float64, log *logger.Logger) ArticleService {
	if notifier == nil {
		notifier = telegram.NewNoopNotifier()
	}
	return &articleService{
		pipeline:    pipeline,
		articleRepo: articleRepo,
		notifier:    notifier,
		minAbsScore: minAbsScore,
		logger:      log,
	}
}

func (s *articleService) ProcessArticle(ctx context.Context, article dto.Article) (*entity.NewsArticle, bool, error) {
	ctx = logger.WithFields(ctx, logger.StringField("article_url", article.URL))

	existing, err := s.articleRepo.FindExistingURLs(ctx, []string{article.URL})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check existing article", logger.ErrorField(err))
		return nil, false, fmt.Errorf("failed to check existing article: %w", err)
	}
	if existing[article.URL] {
		s.logger.InfoContext(ctx, "Article already analyzed")
		return nil, false, nil
	}

	body := article.Content
	if body == "" {
		body = article.Description
	}
	if body == "" {
		return nil, false, ErrEmptyArticle
	}

	analysis, err := s.pipeline.BuildInsights(ctx, body)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build insights", logger.ErrorField(err))
		return nil, false, fmt.Errorf("failed to build insights: %w", err)
	}

	news, err := toNewsArticle(article, analysis)
	if err != nil {
		return nil, false, err
	}

	created, err := s.articleRepo.CreateIgnoreConflict(ctx, news)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create news article", logger.ErrorField(err))
		return nil, false, fmt.Errorf("failed to create news article: %w", err)
	}
	if !created {
		return nil, false, nil
	}

	s.logger.InfoContext(ctx, "Article analyzed",
		logger.IntField("insights", len(analysis.Insights)),
		logger.Field("tickers", analysis.Tickers),
	)
	s.notify(ctx, article, analysis.Insights)
	return news, true, nil
}

func (s *articleService) notify(ctx context.Context, article dto.Article, insights []dto.Insight) {
	strong := telegram.FilterStrongInsights(insights, s.minAbsScore)
	if len(strong) == 0 {
		return
	}
	for _, msg := range telegram.FormatInsightAlert(telegram.InsightAlert{Title: article.Title, URL: article.URL, Insights: strong}) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.WarnContext(ctx, "Failed to send insight alert", logger.ErrorField(err))
			return
		}
	}
}

func (s *articleService) FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsArticle, error) {
	articles, err := s.articleRepo.FindByTicker(ctx, ticker, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to find news by ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, fmt.Errorf("failed to find news by ticker: %w", err)
	}
	return articles, nil
}

func toNewsArticle(article dto.Article, analysis *dto.ArticleAnalysis) (*entity.NewsArticle, error) {
	news := &entity.NewsArticle{
		Title:       utils.SafeText(article.Title),
		Description: utils.SafeText(article.Description),
		ArticleURL:  article.URL,
		ImageURL:    article.ImageURL,
		Authors:     article.Authors,
		PublishedAt: article.PublishedAt,
		Publisher: entity.Publisher{
			Name:        utils.SafeText(article.Publisher.Name),
			HomepageURL: article.Publisher.HomepageURL,
			LogoURL:     article.Publisher.LogoURL,
		},
		Tickers: analysis.Tickers,
		Summary: analysis.Summary,
	}
	for _, in := range analysis.Insights {
		probs, err := json.Marshal(in.Probabilities)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal probabilities: %w", err)
		}
		news.Insights = append(news.Insights, entity.Insight{
			Ticker:             in.Ticker,
			Sentiment:          in.Sentiment,
			SentimentReasoning: utils.SafeText(in.SentimentReasoning),
			SentimentScore:     in.SentimentScore,
			Confidence:         in.Confidence,
			Probabilities:      datatypes.JSON(probs),
		})
	}
	return news, nil
}
