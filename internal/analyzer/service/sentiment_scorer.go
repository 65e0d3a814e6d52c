package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"
)

// ErrInvalidDistribution is returned when the classifier output is not a probability distribution.
var ErrInvalidDistribution = errors.New("invalid probability distribution")

const distributionTolerance = 1e-6

// SentimentScorer turns classifier output into a bounded sentiment score.
type SentimentScorer interface {
	Predict(ctx context.Context, sentence string) (*dto.SentimentResult, error)
}

type sentimentScorer struct {
	classifier repository.ClassifierRepository
	logger     *logger.Logger
}

// NewSentimentScorer creates a scorer on top of classifier.
func NewSentimentScorer(classifier repository.ClassifierRepository, log *logger.Logger) SentimentScorer {
	return &sentimentScorer{classifier: classifier, logger: log}
}

func (s *sentimentScorer) Predict(ctx context.Context, sentence string) (*dto.SentimentResult, error) {
	raw, err := s.classifier.Classify(ctx, sentence)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to classify sentence", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to classify sentence: %w", err)
	}

	probs, err := normalizeDistribution(raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "Classifier returned an invalid distribution", logger.ErrorField(err), logger.Field("probabilities", raw))
		return nil, err
	}
	return scoreDistribution(probs), nil
}

// normalizeDistribution checks every label is present and non-negative and rescales the values to sum to 1.
func normalizeDistribution(raw map[string]float64) (map[string]float64, error) {
	total := 0.0
	for _, label := range dto.SentimentLabels {
		p, ok := raw[label]
		if !ok {
			return nil, fmt.Errorf("%w: missing label %s", ErrInvalidDistribution, label)
		}
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidDistribution, label, p)
		}
		total += p
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: probabilities sum to %v", ErrInvalidDistribution, total)
	}

	probs := make(map[string]float64, len(dto.SentimentLabels))
	for _, label := range dto.SentimentLabels {
		probs[label] = raw[label]
		if math.Abs(total-1) > distributionTolerance {
			probs[label] /= total
		}
	}
	return probs, nil
}

func scoreDistribution(probs map[string]float64) *dto.SentimentResult {
	best := dto.SentimentLabels[0]
	score := 0.0
	for _, label := range dto.SentimentLabels {
		if probs[label] > probs[best] {
			best = label
		}
		score += probs[label] * dto.SentimentWeights[label]
	}

	rounded := make(map[string]float64, len(probs))
	for label, p := range probs {
		rounded[label] = utils.Round(p, 4)
	}
	return &dto.SentimentResult{
		Sentiment:     best,
		Score:         utils.Round(score, 4),
		Confidence:    utils.Round(probs[best], 4),
		Probabilities: rounded,
	}
}
