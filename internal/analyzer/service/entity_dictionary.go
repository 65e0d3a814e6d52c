package service

import (
	"strings"
	"sync/atomic"

	"golang-news-insight/internal/analyzer/dto"
)

// Corporate suffixes in match order. Only the first one found is stripped.
var companySuffixes = []string{
	" Inc.", " Inc", " Corporation", " Corp.", " Corp", " Company", " Co.", " Co",
	" & Co.", " & Co", " Ltd.", " Ltd", " Limited", " LLC", " Group",
}

// ShortenCompanyName strips the first matching corporate suffix and trims the result.
func ShortenCompanyName(name string) string {
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, suffix))
		}
	}
	return strings.TrimSpace(name)
}

// EntityDictionary is an immutable snapshot mapping company name variants to tickers.
// Build a new one to change it; never mutate a published snapshot.
type EntityDictionary struct {
	entries      []dto.TickerEntry
	nameToTicker map[string]string
	names        []string
	tickerToName map[string]string
}

// NewEntityDictionary indexes entries. Every canonical name is registered together with its
// shortened variant; later entries win on key collisions. Rows without symbol or name are skipped.
func NewEntityDictionary(entries []dto.TickerEntry) *EntityDictionary {
	d := &EntityDictionary{
		entries:      make([]dto.TickerEntry, 0, len(entries)),
		nameToTicker: make(map[string]string, len(entries)*2),
		tickerToName: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Symbol == "" || e.Name == "" {
			continue
		}
		d.entries = append(d.entries, e)
		d.put(e.Name, e.Symbol)
		if short := ShortenCompanyName(e.Name); short != e.Name && short != "" {
			d.put(short, e.Symbol)
		}
		d.tickerToName[e.Symbol] = e.Name
	}
	return d
}

func (d *EntityDictionary) put(name, ticker string) {
	if _, ok := d.nameToTicker[name]; !ok {
		d.names = append(d.names, name)
	}
	d.nameToTicker[name] = ticker
}

// TickerFor returns the ticker registered under the exact name.
func (d *EntityDictionary) TickerFor(name string) (string, bool) {
	t, ok := d.nameToTicker[name]
	return t, ok
}

// CompanyName returns the canonical name of a ticker.
func (d *EntityDictionary) CompanyName(ticker string) (string, bool) {
	n, ok := d.tickerToName[ticker]
	return n, ok
}

// HasTicker reports whether ticker is a known symbol.
func (d *EntityDictionary) HasTicker(ticker string) bool {
	_, ok := d.tickerToName[ticker]
	return ok
}

// Names returns every key in first-insertion order. The slice must not be modified.
func (d *EntityDictionary) Names() []string {
	return d.names
}

// Entries returns the source rows the snapshot was built from. The slice must not be modified.
func (d *EntityDictionary) Entries() []dto.TickerEntry {
	return d.entries
}

// TickerCount returns the number of distinct tickers.
func (d *EntityDictionary) TickerCount() int {
	return len(d.tickerToName)
}

// IsEmpty reports whether the snapshot holds no tickers.
func (d *EntityDictionary) IsEmpty() bool {
	return len(d.tickerToName) == 0
}

// DictionaryProvider hands out the current dictionary snapshot.
type DictionaryProvider interface {
	Current() *EntityDictionary
}

// DictionaryStore publishes dictionary snapshots to concurrent readers with an atomic swap.
type DictionaryStore struct {
	current atomic.Pointer[EntityDictionary]
}

// NewDictionaryStore creates a store holding initial, or an empty dictionary when initial is nil.
func NewDictionaryStore(initial *EntityDictionary) *DictionaryStore {
	s := &DictionaryStore{}
	if initial == nil {
		initial = NewEntityDictionary(nil)
	}
	s.current.Store(initial)
	return s
}

// Current returns the latest snapshot. Never nil.
func (s *DictionaryStore) Current() *EntityDictionary {
	return s.current.Load()
}

// Swap publishes next and returns the snapshot it replaced.
func (s *DictionaryStore) Swap(next *EntityDictionary) *EntityDictionary {
	if next == nil {
		next = NewEntityDictionary(nil)
	}
	return s.current.Swap(next)
}
