package service

import (
	"testing"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestTickerMatcher_MatchCompaniesToTickers(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(testDictionary()))

	tests := []struct {
		name      string
		span      dto.CompanySpan
		ticker    string
		source    string
		matchedTo string
	}{
		{name: "canonical name", span: dto.CompanySpan{Name: "Apple Inc."}, ticker: "AAPL", source: common.TickerSourceExactMatch},
		{name: "shortened name", span: dto.CompanySpan{Name: "Microsoft"}, ticker: "MSFT", source: common.TickerSourceExactMatch},
		{name: "suffix variant", span: dto.CompanySpan{Name: "Microsoft Corp."}, ticker: "MSFT", source: common.TickerSourceExactMatch},
		{
			name:      "partial match",
			span:      dto.CompanySpan{Name: "Goldman Sachs"},
			ticker:    "GS",
			source:    common.TickerSourcePartialMatch,
			matchedTo: "The Goldman Sachs Group, Inc.",
		},
		{name: "unknown company", span: dto.CompanySpan{Name: "Acme Widgets"}},
		{name: "substring without shared words", span: dto.CompanySpan{Name: "Amazonia Holdings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := matcher.MatchCompaniesToTickers([]dto.CompanySpan{tt.span})
			assert.Len(t, matches, 1)
			m := matches[0]
			assert.Equal(t, tt.span, m.CompanySpan)
			assert.Equal(t, tt.ticker, m.Ticker)
			assert.Equal(t, tt.source, m.TickerSource)
			assert.Equal(t, tt.matchedTo, m.MatchedTo)
		})
	}
}

func TestTickerMatcher_PreservesOrder(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(testDictionary()))

	matches := matcher.MatchCompaniesToTickers([]dto.CompanySpan{
		{Name: "Microsoft", Start: 0, End: 9},
		{Name: "Nobody", Start: 10, End: 16},
		{Name: "Apple", Start: 20, End: 25},
	})
	assert.Equal(t, []string{"MSFT", "", "AAPL"}, []string{matches[0].Ticker, matches[1].Ticker, matches[2].Ticker})
}

func TestTickerMatcher_ResolveTickers(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(testDictionary()))

	matches := matcher.ResolveTickers([]dto.TickerMatch{
		{CompanySpan: dto.CompanySpan{Name: "Whatever"}, Ticker: "MSFT"},
		{CompanySpan: dto.CompanySpan{Name: "Apple"}, Ticker: "ZZZZ"},
		{CompanySpan: dto.CompanySpan{Name: "Goldman Sachs"}, Ticker: "GS", TickerSource: common.TickerSourcePartialMatch},
	})

	assert.Equal(t, "MSFT", matches[0].Ticker)
	assert.Equal(t, common.TickerSourceExactMatch, matches[0].TickerSource)

	assert.Equal(t, "AAPL", matches[1].Ticker)
	assert.Equal(t, common.TickerSourceExactMatch, matches[1].TickerSource)

	assert.Equal(t, "GS", matches[2].Ticker)
	assert.Equal(t, common.TickerSourcePartialMatch, matches[2].TickerSource)
}

func TestTickerMatcher_EmptyDictionary(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(nil))

	matches := matcher.MatchCompaniesToTickers([]dto.CompanySpan{{Name: "Apple Inc."}})
	assert.False(t, matches[0].HasTicker())
	assert.Empty(t, matches[0].TickerSource)
	assert.Empty(t, matcher.MatchCompaniesToTickers(nil))
}

func TestTickerMatcher_IsValidTicker(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(testDictionary()))

	assert.True(t, matcher.IsValidTicker("AAPL"))
	assert.True(t, matcher.IsValidTicker(" aapl "))
	assert.False(t, matcher.IsValidTicker(""))
	// Well-formed but unlisted symbols are rejected.
	assert.False(t, matcher.IsValidTicker("ZZZZ"))
	assert.False(t, matcher.IsValidTicker("TOOLONG"))
}

func TestTickerMatcher_ReadsCurrentSnapshot(t *testing.T) {
	store := NewDictionaryStore(nil)
	matcher := NewTickerMatcher(store)
	assert.False(t, matcher.IsValidTicker("AAPL"))

	store.Swap(testDictionary())
	assert.True(t, matcher.IsValidTicker("AAPL"))
}

func TestTickerMatcher_MatchWithSnapshot(t *testing.T) {
	matcher := NewTickerMatcher(NewDictionaryStore(nil))
	spans := []dto.CompanySpan{{Name: "Apple Inc."}}

	assert.Empty(t, matcher.MatchCompaniesToTickers(spans)[0].Ticker)
	assert.Equal(t, "AAPL", matcher.MatchWithSnapshot(spans, testDictionary())[0].Ticker)
}
