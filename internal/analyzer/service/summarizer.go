package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// Summarizer picks the most salient sentences of an article.
type Summarizer interface {
	// Summarize returns at most topN sentences ordered by descending importance. When the text has
	// topN sentences or fewer they are returned in document order without ranking.
	Summarize(text string, topN int) []string
}

type textRankSummarizer struct {
	cleaner   *TextCleaner
	stopWords map[string]struct{}
}

// NewSummarizer creates a TextRank summarizer over Jaccard similarity with a finance keyword boost.
func NewSummarizer(cleaner *TextCleaner) Summarizer {
	stopWords := make(map[string]struct{}, len(englishStopWords)+len(financialStopWords))
	for _, w := range englishStopWords {
		stopWords[w] = struct{}{}
	}
	for _, w := range financialStopWords {
		stopWords[w] = struct{}{}
	}
	return &textRankSummarizer{cleaner: cleaner, stopWords: stopWords}
}

func (s *textRankSummarizer) Summarize(text string, topN int) []string {
	sents := SplitSentences(s.cleaner.Clean(text))
	if len(sents) <= topN {
		return sents
	}
	if topN <= 0 {
		return []string{}
	}

	tokens := make([][]string, len(sents))
	filtered := make([][]string, len(sents))
	for i, sent := range sents {
		tokens[i] = preprocessTokens(sent)
		filtered[i] = s.removeStopWords(tokens[i])
	}

	matrix := make([][]float64, len(sents))
	for i := range matrix {
		matrix[i] = make([]float64, len(sents))
	}
	for i := range sents {
		for j := i + 1; j < len(sents); j++ {
			sim := sentenceSimilarity(filtered[i], filtered[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	scores := pageRank(matrix, pageRankDamping, pageRankTolerance, pageRankMaxIter)
	for i := range scores {
		scores[i] *= 1 + 0.1*float64(countFinanceTerms(tokens[i]))
	}

	order := make([]int, len(sents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	summary := make([]string, 0, topN)
	for _, idx := range order[:topN] {
		summary = append(summary, sents[idx])
	}
	return summary
}

func (s *textRankSummarizer) removeStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := s.stopWords[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// SplitSentences segments text on Unicode sentence boundaries, trimming each sentence and dropping blanks.
func SplitSentences(text string) []string {
	out := []string{}
	if strings.TrimSpace(text) == "" {
		return out
	}
	iter := sentences.FromString(text)
	for iter.Next() {
		if sent := strings.TrimSpace(iter.Value()); sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// preprocessTokens lowercases text, strips punctuation and splits on whitespace.
func preprocessTokens(text string) []string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = nonWordChars.ReplaceAllString(text, "")
	return strings.Fields(strings.ToLower(text))
}

// sentenceSimilarity is the Jaccard index of the two token sets plus 0.1 per finance keyword token
// across both lists, capped at 1. Either set being empty yields 0.
func sentenceSimilarity(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	sim := float64(intersection) / float64(union)

	sim += 0.1 * float64(countFinanceTerms(a)+countFinanceTerms(b))
	if sim > 1 {
		sim = 1
	}
	return sim
}

// countFinanceTerms counts tokens containing at least one finance keyword.
func countFinanceTerms(tokens []string) int {
	count := 0
	for _, t := range tokens {
		for _, kw := range financeKeywords {
			if strings.Contains(t, kw) {
				count++
				break
			}
		}
	}
	return count
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
