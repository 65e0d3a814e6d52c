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

func TestTickerValidator_AppleScenario(t *testing.T) {
	doc := appleProfitDocument()
	annotator := newFakeAnnotator(doc)
	validator := NewTickerValidator(MustTextCleaner(), annotator, NewDictionaryStore(testDictionary()), logger.NewNop())

	summary, err := validator.Validate(context.Background(), doc.Text)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.IdentifiedCompanies)
	assert.Equal(t, 1, summary.MatchedTickers)
	assert.Equal(t, 0, summary.UnmatchedEntities)
	assert.Empty(t, summary.UnknownEntities)
	require.Len(t, summary.ValidatedCompanies, 1)

	company := summary.ValidatedCompanies[0]
	assert.Equal(t, "Apple Inc.", company.Name)
	assert.Equal(t, "AAPL", company.Ticker)
	assert.Equal(t, common.TickerSourceExactMatch, company.TickerSource)
	require.Len(t, company.Mentions, 1)
	assert.Equal(t, doc.Text, company.Mentions[0].Sentence)

	assert.Equal(t, 1, annotator.calls)
}

func TestTickerValidator_UnknownEntity(t *testing.T) {
	text := "Acme Widgets and Microsoft signed a deal."
	doc := &dto.Document{Text: text, Entities: []dto.Entity{orgEntity(text, "Acme Widgets")}}
	validator := NewTickerValidator(MustTextCleaner(), newFakeAnnotator(doc), NewDictionaryStore(testDictionary()), logger.NewNop())

	summary, err := validator.Validate(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.IdentifiedCompanies)
	assert.Equal(t, 1, summary.MatchedTickers)
	assert.Equal(t, 1, summary.UnmatchedEntities)
	assert.Equal(t, "MSFT", summary.ValidatedCompanies[0].Ticker)
	assert.Equal(t, "Acme Widgets", summary.UnknownEntities[0].Name)
	assert.Empty(t, summary.UnknownEntities[0].Mentions)
}

func TestTickerValidator_EmptyText(t *testing.T) {
	annotator := newFakeAnnotator()
	validator := NewTickerValidator(MustTextCleaner(), annotator, NewDictionaryStore(testDictionary()), logger.NewNop())

	summary, err := validator.Validate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, &dto.ValidationSummary{
		ValidatedCompanies: []dto.CompanyMention{},
		UnknownEntities:    []dto.CompanyMention{},
	}, summary)
	assert.Zero(t, annotator.calls)
}

func TestTickerValidator_Idempotent(t *testing.T) {
	doc := appleIncreaseDocument()
	validator := NewTickerValidator(MustTextCleaner(), newFakeAnnotator(doc), NewDictionaryStore(testDictionary()), logger.NewNop())

	first, err := validator.Validate(context.Background(), doc.Text)
	require.NoError(t, err)
	second, err := validator.Validate(context.Background(), doc.Text)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTickerValidator_AnnotatorError(t *testing.T) {
	annotator := newFakeAnnotator()
	annotator.err = errors.New("connection refused")
	validator := NewTickerValidator(MustTextCleaner(), annotator, NewDictionaryStore(testDictionary()), logger.NewNop())

	summary, err := validator.Validate(context.Background(), "Apple rose.")
	require.Error(t, err)
	assert.Nil(t, summary)
}

// countingProvider counts snapshot reads.
type countingProvider struct {
	store *DictionaryStore
	reads int
}

func (p *countingProvider) Current() *EntityDictionary {
	p.reads++
	return p.store.Current()
}

func TestTickerValidator_ReadsOneSnapshotPerCall(t *testing.T) {
	doc := appleProfitDocument()
	annotator := newFakeAnnotator(doc)
	provider := &countingProvider{store: NewDictionaryStore(testDictionary())}
	validator := NewTickerValidator(MustTextCleaner(), annotator, provider, logger.NewNop())

	summary, err := validator.Validate(context.Background(), doc.Text)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MatchedTickers)
	assert.Equal(t, 1, provider.reads)
	assert.Equal(t, 1, annotator.calls)
}
