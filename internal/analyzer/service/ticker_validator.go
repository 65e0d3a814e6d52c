package service

import (
	"context"
	"fmt"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
)

// TickerValidator finds, resolves and contextualizes the companies mentioned in a text.
type TickerValidator interface {
	// Validate is deterministic for a fixed dictionary snapshot.
	Validate(ctx context.Context, text string) (*dto.ValidationSummary, error)
}

type tickerValidator struct {
	cleaner      *TextCleaner
	annotator    repository.AnnotatorRepository
	dictionaries DictionaryProvider
	identifier   EntityIdentifier
	matcher      TickerMatcher
	analyzer     ContextAnalyzer
	logger       *logger.Logger
}

// NewTickerValidator creates a validator that annotates each text once and reads a single
// dictionary snapshot per call, sharing both across the identify, match and analyze stages.
func NewTickerValidator(cleaner *TextCleaner, annotator repository.AnnotatorRepository, dictionaries DictionaryProvider, log *logger.Logger) TickerValidator {
	return &tickerValidator{
		cleaner:      cleaner,
		annotator:    annotator,
		dictionaries: dictionaries,
		identifier:   NewEntityIdentifier(cleaner, annotator, dictionaries, log),
		matcher:      NewTickerMatcher(dictionaries),
		analyzer:     NewContextAnalyzer(cleaner, annotator, log),
		logger:       log,
	}
}

func (v *tickerValidator) Validate(ctx context.Context, text string) (*dto.ValidationSummary, error) {
	dict := v.dictionaries.Current()
	cleaned := v.cleaner.Clean(text)
	if cleaned == "" {
		return summarize(nil), nil
	}

	doc, err := v.annotator.Annotate(ctx, cleaned)
	if err != nil {
		v.logger.ErrorContext(ctx, "Failed to annotate text", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}

	spans := v.identifier.IdentifyInDocument(doc, dict)
	matches := v.matcher.MatchWithSnapshot(spans, dict)
	return summarize(v.analyzer.AnalyzeDocument(doc, matches)), nil
}

func summarize(mentions []dto.CompanyMention) *dto.ValidationSummary {
	summary := &dto.ValidationSummary{
		IdentifiedCompanies: len(mentions),
		ValidatedCompanies:  []dto.CompanyMention{},
		UnknownEntities:     []dto.CompanyMention{},
	}
	for _, m := range mentions {
		if m.HasTicker() {
			summary.ValidatedCompanies = append(summary.ValidatedCompanies, m)
		} else {
			summary.UnknownEntities = append(summary.UnknownEntities, m)
		}
	}
	summary.MatchedTickers = len(summary.ValidatedCompanies)
	summary.UnmatchedEntities = len(summary.UnknownEntities)
	return summary
}
