package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
)

// EntityIdentifier locates company mentions in text.
type EntityIdentifier interface {
	// IdentifyCompanies returns non-overlapping spans sorted by start, with offsets into the cleaned text.
	IdentifyCompanies(ctx context.Context, text string) ([]dto.CompanySpan, error)
	// IdentifyInDocument does the same on an already annotated document and a fixed dictionary snapshot.
	IdentifyInDocument(doc *dto.Document, dict *EntityDictionary) []dto.CompanySpan
}

type entityIdentifier struct {
	cleaner      *TextCleaner
	annotator    repository.AnnotatorRepository
	dictionaries DictionaryProvider
	logger       *logger.Logger
}

// NewEntityIdentifier creates an identifier combining annotator NER with dictionary lookups.
func NewEntityIdentifier(cleaner *TextCleaner, annotator repository.AnnotatorRepository, dictionaries DictionaryProvider, log *logger.Logger) EntityIdentifier {
	return &entityIdentifier{
		cleaner:      cleaner,
		annotator:    annotator,
		dictionaries: dictionaries,
		logger:       log,
	}
}

func (e *entityIdentifier) IdentifyCompanies(ctx context.Context, text string) ([]dto.CompanySpan, error) {
	cleaned := e.cleaner.Clean(text)
	if cleaned == "" {
		return []dto.CompanySpan{}, nil
	}

	doc, err := e.annotator.Annotate(ctx, cleaned)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to annotate text", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}
	return e.IdentifyInDocument(doc, e.dictionaries.Current()), nil
}

func (e *entityIdentifier) IdentifyInDocument(doc *dto.Document, dict *EntityDictionary) []dto.CompanySpan {
	return identifyCompanies(doc, dict)
}

// Entity labels the annotator may use for organizations.
var organizationLabels = map[string]struct{}{"ORG": {}, "ORGANIZATION": {}}

func identifyCompanies(doc *dto.Document, dict *EntityDictionary) []dto.CompanySpan {
	spans := []dto.CompanySpan{}

	for _, ent := range doc.Entities {
		if _, ok := organizationLabels[ent.Label]; !ok || utf8.RuneCountInString(ent.Text) <= 2 {
			continue
		}
		if overlapsAny(spans, ent.Start, ent.End) {
			continue
		}
		spans = append(spans, dto.CompanySpan{Name: ent.Text, Start: ent.Start, End: ent.End})
	}

	for _, name := range dict.Names() {
		if utf8.RuneCountInString(name) <= 2 {
			continue
		}
		for _, loc := range findWholeWord(doc.Text, name) {
			if overlapsAny(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, dto.CompanySpan{Name: name, Start: loc[0], End: loc[1]})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

func overlapsAny(spans []dto.CompanySpan, start, end int) bool {
	for _, s := range spans {
		if s.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// findWholeWord returns the byte ranges of non-overlapping, case-sensitive occurrences of word that
// sit on word boundaries in the regex \b sense.
func findWholeWord(text, word string) [][2]int {
	if word == "" {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(word)
	last, _ := utf8.DecodeLastRuneInString(word)

	var out [][2]int
	pos := 0
	for pos <= len(text)-len(word) {
		idx := strings.Index(text[pos:], word)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(word)
		if isBoundary(text, start, first, true) && isBoundary(text, end, last, false) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

// isBoundary reports whether a \b holds at byte offset at, given the rune of the match on the inner side.
func isBoundary(text string, at int, inner rune, leading bool) bool {
	outerIsWord := false
	if leading && at > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:at])
		outerIsWord = isWordRune(r)
	}
	if !leading && at < len(text) {
		r, _ := utf8.DecodeRuneInString(text[at:])
		outerIsWord = isWordRune(r)
	}
	return outerIsWord != isWordRune(inner)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
