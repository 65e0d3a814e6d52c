package dto

const (
	SentimentNeutral  = "Neutral"
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
)

// SentimentLabels is the classifier's output order.
var SentimentLabels = []string{SentimentNeutral, SentimentPositive, SentimentNegative}

// SentimentWeights maps each label to its contribution to the continuous score.
var SentimentWeights = map[string]float64{
	SentimentNegative: -1,
	SentimentNeutral:  0,
	SentimentPositive: 1,
}

// SentimentResult is the scored classifier output for one sentence.
type SentimentResult struct {
	Sentiment     string             `json:"sentiment"`
	Score         float64            `json:"score"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}
