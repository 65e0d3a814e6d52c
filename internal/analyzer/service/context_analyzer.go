package service

import (
	"context"
	"fmt"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
)

const phraseWindow = 3

var financialVerbs = toSet([]string{
	"report", "announce", "increase", "decrease", "rise", "fall", "grow", "shrink", "launch", "acquire",
	"merge", "sell", "buy", "invest", "develop", "release", "cut", "raise", "expand", "reduce",
})

var financialMetrics = toSet([]string{
	"profit", "revenue", "sales", "earnings", "income", "margin", "share", "stock", "price", "dividend",
	"market", "growth", "quarter", "fiscal", "year", "forecast", "outlook", "guidance",
})

var actionDependencies = toSet([]string{"nsubj", "dobj"})

// ContextAnalyzer extracts the sentences and financial actions around resolved companies.
type ContextAnalyzer interface {
	// AnalyzeCompanyContext expects match offsets that refer to the cleaned form of text.
	AnalyzeCompanyContext(ctx context.Context, text string, matches []dto.TickerMatch) ([]dto.CompanyMention, error)
	AnalyzeDocument(doc *dto.Document, matches []dto.TickerMatch) []dto.CompanyMention
}

type contextAnalyzer struct {
	cleaner   *TextCleaner
	annotator repository.AnnotatorRepository
	logger    *logger.Logger
}

// NewContextAnalyzer creates a dependency-parse based context analyzer.
func NewContextAnalyzer(cleaner *TextCleaner, annotator repository.AnnotatorRepository, log *logger.Logger) ContextAnalyzer {
	return &contextAnalyzer{cleaner: cleaner, annotator: annotator, logger: log}
}

func (a *contextAnalyzer) AnalyzeCompanyContext(ctx context.Context, text string, matches []dto.TickerMatch) ([]dto.CompanyMention, error) {
	cleaned := a.cleaner.Clean(text)
	if cleaned == "" {
		return analyzeCompanyContext(&dto.Document{}, matches), nil
	}
	doc, err := a.annotator.Annotate(ctx, cleaned)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to annotate text for context analysis", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}
	return a.AnalyzeDocument(doc, matches), nil
}

func (a *contextAnalyzer) AnalyzeDocument(doc *dto.Document, matches []dto.TickerMatch) []dto.CompanyMention {
	return analyzeCompanyContext(doc, matches)
}

func analyzeCompanyContext(doc *dto.Document, matches []dto.TickerMatch) []dto.CompanyMention {
	out := make([]dto.CompanyMention, 0, len(matches))
	for _, match := range matches {
		mention := dto.CompanyMention{TickerMatch: match, Mentions: []dto.Mention{}}

		for _, sent := range doc.Sentences {
			start, end := doc.SentenceBounds(sent)
			if start == end || !match.Overlaps(start, end) {
				continue
			}

			var companyTokens []int
			for i := sent.Start; i < sent.End; i++ {
				tok := doc.Tokens[i]
				if match.Overlaps(tok.Start, tok.End()) {
					companyTokens = append(companyTokens, i)
				}
			}
			if len(companyTokens) == 0 {
				continue
			}

			mention.Mentions = append(mention.Mentions, dto.Mention{
				Sentence:         doc.SpanText(sent.Start, sent.End),
				FinancialActions: extractFinancialActions(doc, sent, companyTokens),
			})
		}
		out = append(out, mention)
	}
	return out
}

func extractFinancialActions(doc *dto.Document, sent dto.Sentence, companyTokens []int) []dto.FinancialAction {
	actions := []dto.FinancialAction{}
	for i := sent.Start; i < sent.End; i++ {
		tok := doc.Tokens[i]
		if _, ok := actionDependencies[tok.Dep]; !ok {
			continue
		}
		if _, ok := financialVerbs[strings.ToLower(tok.Lemma)]; !ok {
			continue
		}

		connected := false
		for _, c := range companyTokens {
			if tokensConnected(doc, i, c) {
				connected = true
				break
			}
		}
		if !connected {
			continue
		}

		action := dto.FinancialAction{Verb: tok.Text, Phrase: phraseAround(doc, i)}
		for _, child := range tok.Children {
			ct := doc.Tokens[child]
			_, textIsMetric := financialMetrics[strings.ToLower(ct.Text)]
			_, lemmaIsMetric := financialMetrics[strings.ToLower(ct.Lemma)]
			if textIsMetric || lemmaIsMetric {
				action.Metrics = append(action.Metrics, dto.FinancialMetric{Metric: ct.Text, Phrase: phraseAround(doc, child)})
			}
			if ct.POS == "NUM" || strings.Contains(ct.Text, "%") {
				action.Metrics = append(action.Metrics, dto.FinancialMetric{Value: ct.Text, Phrase: phraseAround(doc, child)})
			}
		}
		actions = append(actions, action)
	}
	return actions
}

// tokensConnected reports whether one token dominates the other, or a child of either token is or
// dominates the other.
func tokensConnected(doc *dto.Document, a, b int) bool {
	if doc.IsAncestor(a, b) || doc.IsAncestor(b, a) {
		return true
	}
	for _, c := range doc.Tokens[a].Children {
		if c == b || doc.IsAncestor(c, b) {
			return true
		}
	}
	for _, c := range doc.Tokens[b].Children {
		if c == a || doc.IsAncestor(c, a) {
			return true
		}
	}
	return false
}

func phraseAround(doc *dto.Document, i int) string {
	return doc.SpanText(i-phraseWindow, i+phraseWindow+1)
}
