package service

import (
	"context"
	"fmt"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"
)

// DefaultSummaryTopN is the number of summary sentences analyzed per article.
const DefaultSummaryTopN = 5

// InsightPipeline turns an article body into per-ticker sentiment insights.
type InsightPipeline interface {
	BuildInsights(ctx context.Context, text string) (*dto.ArticleAnalysis, error)
}

type insightPipeline struct {
	summarizer Summarizer
	validator  TickerValidator
	scorer     SentimentScorer
	topN       int
	logger     *logger.Logger
}

// NewInsightPipeline chains summarization, ticker validation and sentiment scoring.
func NewInsightPipeline(summarizer Summarizer, validator TickerValidator, scorer SentimentScorer, topN int, log *logger.Logger) InsightPipeline {
	if topN <= 0 {
		topN = DefaultSummaryTopN
	}
	return &insightPipeline{
		summarizer: summarizer,
		validator:  validator,
		scorer:     scorer,
		topN:       topN,
		logger:     log,
	}
}

func (p *insightPipeline) BuildInsights(ctx context.Context, text string) (*dto.ArticleAnalysis, error) {
	summary := p.summarizer.Summarize(text, p.topN)
	analysis := &dto.ArticleAnalysis{
		Summary:  summary,
		Tickers:  []string{},
		Insights: []dto.Insight{},
	}

	for _, sentence := range summary {
		validation, err := p.validator.Validate(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("failed to validate summary sentence: %w", err)
		}
		if len(validation.ValidatedCompanies) == 0 {
			continue
		}
		first := validation.ValidatedCompanies[0]
		if first.TickerSource != common.TickerSourceExactMatch {
			p.logger.DebugContext(ctx, "Skipping sentence without exact ticker match", logger.StringField("company", first.Name))
			continue
		}

		result, err := p.scorer.Predict(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("failed to score summary sentence: %w", err)
		}
		analysis.Insights = append(analysis.Insights, dto.Insight{
			Ticker:             first.Ticker,
			Sentiment:          result.Sentiment,
			SentimentReasoning: sentence,
			SentimentScore:     result.Score,
			Confidence:         result.Confidence,
			Probabilities:      result.Probabilities,
		})
		analysis.Tickers = append(analysis.Tickers, first.Ticker)
	}

	analysis.Tickers = utils.UniqueStrings(analysis.Tickers)
	return analysis, nil
}
