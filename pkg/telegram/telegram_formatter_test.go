package telegram

import (
	"strings"
	"testing"

	"golang-news-insight/internal/analyzer/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStrongInsights(t *testing.T) {
	insights := []dto.Insight{
		{Ticker: "AAPL", SentimentScore: 0.8},
		{Ticker: "MSFT", SentimentScore: -0.7},
		{Ticker: "AMZN", SentimentScore: 0.2},
		{Ticker: "GS", SentimentScore: 0.6},
	}

	strong := FilterStrongInsights(insights, 0.6)
	require.Len(t, strong, 3)
	assert.Equal(t, "AAPL", strong[0].Ticker)
	assert.Equal(t, "MSFT", strong[1].Ticker)
	assert.Equal(t, "GS", strong[2].Ticker)

	assert.Empty(t, FilterStrongInsights(insights, 0.9))
}

func TestFormatInsightAlert(t *testing.T) {
	messages := FormatInsightAlert(InsightAlert{
		Title: "Apple_Inc beats *estimates*",
		URL:   "https://news.example.com/a",
		Insights: []dto.Insight{
			{Ticker: "AAPL", Sentiment: dto.SentimentPositive, SentimentScore: 0.8123, Confidence: 0.9, SentimentReasoning: "Apple reported record profit."},
			{Ticker: "MSFT", Sentiment: dto.SentimentNegative, SentimentScore: -0.61, Confidence: 0.7, SentimentReasoning: "Microsoft lagged."},
		},
	})

	require.Len(t, messages, 1)
	msg := messages[0]
	assert.True(t, strings.HasPrefix(msg, "📰 *Apple\\_Inc beats \\*estimates\\**\nhttps://news.example.com/a\n\n"))
	assert.Contains(t, msg, "🟢 *AAPL* Positive (0.8123, confidence 90%)")
	assert.Contains(t, msg, "🔴 *MSFT* Negative (-0.6100, confidence 70%)")
	assert.Contains(t, msg, "💬 Apple reported record profit.")
}

func TestFormatInsightAlert_SplitsLongAlerts(t *testing.T) {
	var insights []dto.Insight
	for i := 0; i < 60; i++ {
		insights = append(insights, dto.Insight{
			Ticker:             "AAPL",
			Sentiment:          dto.SentimentNeutral,
			SentimentReasoning: strings.Repeat("Apple kept guidance unchanged. ", 5),
		})
	}

	messages := FormatInsightAlert(InsightAlert{Title: "Long", URL: "https://news.example.com/long", Insights: insights})
	require.Greater(t, len(messages), 1)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.True(t, strings.HasPrefix(messages[1], "---*Continued, part 2*---"))
	assert.Equal(t, 60, strings.Count(strings.Join(messages, ""), "🟡 *AAPL*"))
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "abc", truncateUTF8("abc", 5))
	assert.Equal(t, "ab", truncateUTF8("abc", 2))
	// "é" is two bytes and is never cut in half.
	assert.Equal(t, "a", truncateUTF8("aé", 2))
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NewNoopNotifier().SendMessage("hello"))
}
