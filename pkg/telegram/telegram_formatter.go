package telegram

import (
	"fmt"
	"math"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
)

const maxMessageLen = 4090

// InsightAlert is one analyzed article worth notifying about.
type InsightAlert struct {
	Title    string
	URL      string
	Insights []dto.Insight
}

// FilterStrongInsights keeps insights whose absolute score reaches minAbsScore.
func FilterStrongInsights(insights []dto.Insight, minAbsScore float64) []dto.Insight {
	var strong []dto.Insight
	for _, in := range insights {
		if math.Abs(in.SentimentScore) >= minAbsScore {
			strong = append(strong, in)
		}
	}
	return strong
}

// FormatInsightAlert formats an article alert into Markdown messages, each within Telegram's length limit.
func FormatInsightAlert(alert InsightAlert) []string {
	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📰 *%s*\n%s\n\n", escapeMarkdown(alert.Title), alert.URL))
		} else {
			current.WriteString(fmt.Sprintf("---*Continued, part %d*---\n\n", part))
		}
	}
	startNewPart()

	for _, in := range alert.Insights {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("%s *%s* %s (%.4f, confidence %.0f%%)\n", sentimentIcon(in.Sentiment), in.Ticker, in.Sentiment, in.SentimentScore, in.Confidence*100))
		entry.WriteString(fmt.Sprintf("💬 %s\n\n", escapeMarkdown(in.SentimentReasoning)))
		entryString := entry.String()

		if current.Len()+len(entryString) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		if len(entryString) > maxMessageLen-current.Len() {
			entryString = truncateUTF8(entryString, maxMessageLen-current.Len())
		}
		current.WriteString(entryString)
	}

	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}

func sentimentIcon(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case "positive":
		return "🟢"
	case "negative":
		return "🔴"
	default:
		return "🟡"
	}
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "[", "\\[", "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && (s[max]&0xC0) == 0x80 {
		max--
	}
	return s[:max]
}
