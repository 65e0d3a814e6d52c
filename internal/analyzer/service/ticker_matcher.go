package service

import (
	"regexp"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/common"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// TickerMatcher resolves company spans to ticker symbols.
type TickerMatcher interface {
	// MatchCompaniesToTickers returns one match per span, in input order.
	MatchCompaniesToTickers(spans []dto.CompanySpan) []dto.TickerMatch
	// MatchWithSnapshot matches against dict instead of the current snapshot.
	MatchWithSnapshot(spans []dto.CompanySpan, dict *EntityDictionary) []dto.TickerMatch
	// ResolveTickers keeps valid pre-attached tickers and resolves the rest.
	ResolveTickers(matches []dto.TickerMatch) []dto.TickerMatch
	IsValidTicker(ticker string) bool
}

type tickerMatcher struct {
	dictionaries DictionaryProvider
}

// NewTickerMatcher creates a matcher reading the current dictionary snapshot on every call.
func NewTickerMatcher(dictionaries DictionaryProvider) TickerMatcher {
	return &tickerMatcher{dictionaries: dictionaries}
}

func (m *tickerMatcher) MatchCompaniesToTickers(spans []dto.CompanySpan) []dto.TickerMatch {
	return matchCompaniesToTickers(spans, m.dictionaries.Current())
}

func (m *tickerMatcher) MatchWithSnapshot(spans []dto.CompanySpan, dict *EntityDictionary) []dto.TickerMatch {
	return matchCompaniesToTickers(spans, dict)
}

func (m *tickerMatcher) ResolveTickers(matches []dto.TickerMatch) []dto.TickerMatch {
	return resolveTickers(matches, m.dictionaries.Current())
}

func (m *tickerMatcher) IsValidTicker(ticker string) bool {
	return isValidTicker(ticker, m.dictionaries.Current())
}

func matchCompaniesToTickers(spans []dto.CompanySpan, dict *EntityDictionary) []dto.TickerMatch {
	matches := make([]dto.TickerMatch, len(spans))
	for i, span := range spans {
		matches[i] = dto.TickerMatch{CompanySpan: span}
	}
	return resolveTickers(matches, dict)
}

func resolveTickers(matches []dto.TickerMatch, dict *EntityDictionary) []dto.TickerMatch {
	out := make([]dto.TickerMatch, len(matches))
	for i, match := range matches {
		out[i] = resolveTicker(match, dict)
	}
	return out
}

func resolveTicker(match dto.TickerMatch, dict *EntityDictionary) dto.TickerMatch {
	if match.HasTicker() && isValidTicker(match.Ticker, dict) {
		if match.TickerSource == "" {
			match.TickerSource = common.TickerSourceExactMatch
		}
		return match
	}

	resolved := dto.TickerMatch{CompanySpan: match.CompanySpan}
	name := match.Name

	short := ShortenCompanyName(name)
	if _, ok := dict.TickerFor(short); ok {
		ticker, found := dict.TickerFor(name)
		if !found {
			ticker, found = dict.TickerFor(short)
		}
		if found && isValidTicker(ticker, dict) {
			resolved.Ticker = ticker
			resolved.TickerSource = common.TickerSourceExactMatch
			return resolved
		}
	}

	if best, ok := bestPartialMatch(name, dict); ok {
		ticker, _ := dict.TickerFor(best)
		if isValidTicker(ticker, dict) {
			resolved.Ticker = ticker
			resolved.TickerSource = common.TickerSourcePartialMatch
			resolved.MatchedTo = best
		}
	}
	return resolved
}

// bestPartialMatch finds the dictionary key contained in name, or containing it, that shares the most
// lowercase words with name. The first key reaching the top score wins.
func bestPartialMatch(name string, dict *EntityDictionary) (string, bool) {
	if name == "" {
		return "", false
	}
	nameWords := toSet(strings.Fields(strings.ToLower(name)))

	best, bestScore := "", 0
	for _, key := range dict.Names() {
		if !strings.Contains(name, key) && !strings.Contains(key, name) {
			continue
		}
		score := 0
		for w := range toSet(strings.Fields(strings.ToLower(key))) {
			if _, ok := nameWords[w]; ok {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	return best, bestScore > 0
}

// isValidTicker accepts only symbols present in the dictionary. Well-formed symbols of one to five
// upper-case letters that the dictionary does not know are rejected as well.
func isValidTicker(ticker string, dict *EntityDictionary) bool {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return false
	}
	if dict.HasTicker(symbol) {
		return true
	}
	if tickerPattern.MatchString(symbol) {
		// TODO: decide with the data owners whether unlisted well-formed symbols should pass.
		return false
	}
	return false
}
