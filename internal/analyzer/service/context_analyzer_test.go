package service

import (
	"context"
	"errors"
	"testing"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appleMatch(doc *dto.Document, name string) dto.TickerMatch {
	span := orgEntity(doc.Text, name)
	return dto.TickerMatch{
		CompanySpan:  dto.CompanySpan{Name: name, Start: span.Start, End: span.End},
		Ticker:       "AAPL",
		TickerSource: common.TickerSourceExactMatch,
	}
}

func TestAnalyzeCompanyContext_FinancialAction(t *testing.T) {
	doc := appleIncreaseDocument()

	mentions := analyzeCompanyContext(doc, []dto.TickerMatch{appleMatch(doc, "Apple")})
	require.Len(t, mentions, 1)
	require.Len(t, mentions[0].Mentions, 1)

	mention := mentions[0].Mentions[0]
	assert.Equal(t, doc.Text, mention.Sentence)
	require.Len(t, mention.FinancialActions, 1)

	action := mention.FinancialActions[0]
	assert.Equal(t, "increase", action.Verb)
	assert.Equal(t, "10% revenue increase.", action.Phrase)
	assert.Equal(t, []dto.FinancialMetric{
		{Value: "10", Phrase: "reported Apple's 10% revenue increase"},
		{Metric: "revenue", Phrase: "'s 10% revenue increase."},
	}, action.Metrics)
}

func TestAnalyzeCompanyContext_NoConnectedAction(t *testing.T) {
	doc := appleProfitDocument()

	mentions := analyzeCompanyContext(doc, []dto.TickerMatch{appleMatch(doc, "Apple Inc.")})
	require.Len(t, mentions, 1)
	require.Len(t, mentions[0].Mentions, 1)
	assert.Equal(t, doc.Text, mentions[0].Mentions[0].Sentence)
	assert.NotNil(t, mentions[0].Mentions[0].FinancialActions)
	assert.Empty(t, mentions[0].Mentions[0].FinancialActions)
}

func TestAnalyzeCompanyContext_SpanOutsideText(t *testing.T) {
	doc := appleProfitDocument()
	match := dto.TickerMatch{CompanySpan: dto.CompanySpan{Name: "Ghost", Start: 500, End: 505}}

	mentions := analyzeCompanyContext(doc, []dto.TickerMatch{match})
	require.Len(t, mentions, 1)
	assert.Equal(t, match, mentions[0].TickerMatch)
	assert.NotNil(t, mentions[0].Mentions)
	assert.Empty(t, mentions[0].Mentions)
}

func TestContextAnalyzer_AnalyzeCompanyContext(t *testing.T) {
	doc := appleIncreaseDocument()
	analyzer := NewContextAnalyzer(MustTextCleaner(), newFakeAnnotator(doc), logger.NewNop())

	mentions, err := analyzer.AnalyzeCompanyContext(context.Background(), "  "+doc.Text+"\n", []dto.TickerMatch{appleMatch(doc, "Apple")})
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Len(t, mentions[0].Mentions[0].FinancialActions, 1)
}

func TestContextAnalyzer_EmptyText(t *testing.T) {
	annotator := newFakeAnnotator()
	analyzer := NewContextAnalyzer(MustTextCleaner(), annotator, logger.NewNop())

	mentions, err := analyzer.AnalyzeCompanyContext(context.Background(), "", []dto.TickerMatch{{CompanySpan: dto.CompanySpan{Name: "Apple"}}})
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Empty(t, mentions[0].Mentions)
	assert.Zero(t, annotator.calls)
}

func TestContextAnalyzer_AnnotatorError(t *testing.T) {
	annotator := newFakeAnnotator()
	annotator.err = errors.New("timeout")
	analyzer := NewContextAnalyzer(MustTextCleaner(), annotator, logger.NewNop())

	_, err := analyzer.AnalyzeCompanyContext(context.Background(), "Apple rose.", nil)
	assert.Error(t, err)
}

func TestTokensConnected(t *testing.T) {
	doc := appleIncreaseDocument()

	assert.True(t, tokensConnected(doc, 7, 2), "head governs child")
	assert.True(t, tokensConnected(doc, 2, 7), "symmetric")
	assert.True(t, tokensConnected(doc, 1, 3), "root dominates everything")
	assert.False(t, tokensConnected(doc, 0, 2), "siblings under different heads")
}

func TestContextAnalyzer_AnalyzeDocument(t *testing.T) {
	doc := appleIncreaseDocument()
	annotator := newFakeAnnotator()
	analyzer := NewContextAnalyzer(MustTextCleaner(), annotator, logger.NewNop())

	mentions := analyzer.AnalyzeDocument(doc, []dto.TickerMatch{appleMatch(doc, "Apple")})
	require.Len(t, mentions, 1)
	assert.Len(t, mentions[0].Mentions[0].FinancialActions, 1)
	assert.Zero(t, annotator.calls)
}
