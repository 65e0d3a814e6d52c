package dto

// Insight is the sentiment toward one ticker expressed by one summary sentence.
type Insight struct {
	Ticker             string             `json:"ticker"`
	Sentiment          string             `json:"sentiment"`
	SentimentReasoning string             `json:"sentiment_reasoning"`
	SentimentScore     float64            `json:"sentiment_score"`
	Confidence         float64            `json:"confidence"`
	Probabilities      map[string]float64 `json:"probabilities,omitempty"`
}

// ArticleAnalysis is the pipeline output for one article body.
type ArticleAnalysis struct {
	Summary  []string  `json:"summary"`
	Tickers  []string  `json:"tickers"`
	Insights []Insight `json:"insights"`
}
