package dto

// AnalyzeTextRequest is the body of the ad-hoc analysis endpoints.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
	TopN int    `json:"top_n,omitempty"`
}

// SummaryResponse lists the ranked summary sentences.
type SummaryResponse struct {
	Sentences []string `json:"sentences"`
}

// TickerResponse is a dictionary lookup result.
type TickerResponse struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// TrendPoint is one bucket of the sentiment trend: s is the average score, t the bucket key.
type TrendPoint struct {
	S float64 `json:"s"`
	T string  `json:"t"`
}

// TrendResponse wraps the sentiment trend series.
type TrendResponse struct {
	Status bool         `json:"status"`
	Data   []TrendPoint `json:"data"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
