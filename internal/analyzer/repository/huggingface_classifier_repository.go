package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/logger"

	"golang.org/x/time/rate"
)

// ClassifierRepository classifies the sentiment of a sentence.
type ClassifierRepository interface {
	// Classify returns the raw probability of every label in dto.SentimentLabels.
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

type huggingFaceClassifierRepository struct {
	endpoint       string
	apiKey         string
	maxLength      int
	client         *http.Client
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewHuggingFaceClassifierRepository creates a client for a text-classification inference endpoint.
func NewHuggingFaceClassifierRepository(cfg *config.Config, log *logger.Logger) ClassifierRepository {
	maxLength := cfg.Classifier.MaxLength
	if maxLength <= 0 {
		maxLength = 512
	}
	return &huggingFaceClassifierRepository{
		endpoint:  cfg.Classifier.BaseURL,
		apiKey:    cfg.Classifier.APIKey,
		maxLength: maxLength,
		client: &http.Client{
			Timeout: timeoutOrDefault(cfg.Classifier.Timeout, 30*time.Second),
		},
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Classifier.MaxRequestPerMinute),
	}
}

type classificationRequest struct {
	Inputs     string                   `json:"inputs"`
	Parameters classificationParameters `json:"parameters"`
}

type classificationParameters struct {
	Truncation bool `json:"truncation"`
	MaxLength  int  `json:"max_length"`
	TopK       int  `json:"top_k"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (r *huggingFaceClassifierRepository) Classify(ctx context.Context, text string) (map[string]float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(classificationRequest{
		Inputs: text,
		Parameters: classificationParameters{
			Truncation: true,
			MaxLength:  r.maxLength,
			TopK:       len(dto.SentimentLabels),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to call classifier", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Classifier returned non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("body", string(body)))
		return nil, fmt.Errorf("%w: classifier returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	scores, ok := decodeLabelScores(body)
	if !ok {
		r.logger.ErrorContext(ctx, "Unexpected classifier response", logger.StringField("body", string(body)))
		return nil, fmt.Errorf("%w: cannot decode classifier response", ErrUnexpectedPayload)
	}
	return toDistribution(scores)
}

// decodeLabelScores accepts both the batched [[{label,score}]] and the flat [{label,score}] shapes.
func decodeLabelScores(body []byte) ([]labelScore, bool) {
	var batched [][]labelScore
	if err := json.Unmarshal(body, &batched); err == nil && len(batched) > 0 {
		return batched[0], true
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, true
	}
	return nil, false
}

// toDistribution requires a score for every sentiment label; endpoints that ignore top_k reply with one.
func toDistribution(scores []labelScore) (map[string]float64, error) {
	dist := make(map[string]float64, len(dto.SentimentLabels))
	for _, s := range scores {
		label, ok := canonicalLabel(s.Label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown label %q", ErrUnexpectedPayload, s.Label)
		}
		dist[label] = s.Score
	}
	for _, label := range dto.SentimentLabels {
		if _, ok := dist[label]; !ok {
			return nil, fmt.Errorf("%w: missing label %s", ErrUnexpectedPayload, label)
		}
	}
	return dist, nil
}

// canonicalLabel maps a label by name first, then by its LABEL_<i> position.
func canonicalLabel(raw string) (string, bool) {
	for _, label := range dto.SentimentLabels {
		if strings.EqualFold(raw, label) {
			return label, true
		}
	}
	if idx, ok := strings.CutPrefix(strings.ToUpper(raw), "LABEL_"); ok {
		i, err := strconv.Atoi(idx)
		if err == nil && i >= 0 && i < len(dto.SentimentLabels) {
			return dto.SentimentLabels[i], true
		}
	}
	return "", false
}
