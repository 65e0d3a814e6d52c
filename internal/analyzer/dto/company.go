package dto

// CompanySpan is a candidate company mention located by byte offsets in the cleaned text.
type CompanySpan struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Overlaps reports whether [start, end) intersects the span.
func (c CompanySpan) Overlaps(start, end int) bool {
	return start < c.End && c.Start < end
}

// TickerMatch is a span with the ticker it resolved to. TickerSource is set only when Ticker is.
type TickerMatch struct {
	CompanySpan
	Ticker       string `json:"ticker,omitempty"`
	TickerSource string `json:"ticker_source,omitempty"`
	MatchedTo    string `json:"matched_to,omitempty"`
}

// HasTicker reports whether a ticker was assigned.
func (m TickerMatch) HasTicker() bool {
	return m.Ticker != ""
}

// FinancialMetric is a metric term or numeric value attached to a financial verb.
type FinancialMetric struct {
	Metric string `json:"metric,omitempty"`
	Value  string `json:"value,omitempty"`
	Phrase string `json:"phrase"`
}

// FinancialAction is a financial verb connected to a company mention.
type FinancialAction struct {
	Verb    string            `json:"verb"`
	Phrase  string            `json:"phrase"`
	Metrics []FinancialMetric `json:"metrics,omitempty"`
}

// Mention is one sentence in which a company appears.
type Mention struct {
	Sentence         string            `json:"sentence"`
	FinancialActions []FinancialAction `json:"financial_actions"`
}

// CompanyMention is a ticker match enriched with its sentence context.
type CompanyMention struct {
	TickerMatch
	Mentions []Mention `json:"mentions"`
}

// ValidationSummary is the result of validating one piece of text.
type ValidationSummary struct {
	IdentifiedCompanies int              `json:"identified_companies"`
	MatchedTickers      int              `json:"matched_tickers"`
	UnmatchedEntities   int              `json:"unmatched_entities"`
	ValidatedCompanies  []CompanyMention `json:"validated_companies"`
	UnknownEntities     []CompanyMention `json:"unknown_entities"`
}
