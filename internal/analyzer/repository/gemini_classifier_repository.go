package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiClassifierRepository asks a Gemini model for the sentiment distribution of a sentence.
type geminiClassifierRepository struct {
	model          string
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiClassifierRepository creates a Gemini backed classifier.
func NewGeminiClassifierRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) ClassifierRepository {
	return &geminiClassifierRepository{
		model:          cfg.Gemini.Model,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Gemini.MaxRequestPerMinute),
		genAiClient:    genAiClient,
	}
}

const sentimentPrompt = `You are a financial sentiment classifier.
Classify the sentiment of the sentence below toward the company it mentions.
Reply with JSON only, no markdown fences, using exactly these keys with probabilities that sum to 1:
{"Neutral": 0.0, "Positive": 0.0, "Negative": 0.0}

Sentence:
%s`

func (r *geminiClassifierRepository) Classify(ctx context.Context, text string) (map[string]float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(sentimentPrompt, text), "user"),
	}
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate content", logger.ErrorField(err), logger.StringField("model", r.model))
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	dist, err := parseGeminiDistribution(resp.Text())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse Gemini response", logger.ErrorField(err))
		return nil, err
	}
	return dist, nil
}

func parseGeminiDistribution(raw string) (map[string]float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var reply map[string]float64
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}

	scores := make([]labelScore, 0, len(reply))
	for label, score := range reply {
		scores = append(scores, labelScore{Label: label, Score: score})
	}
	return toDistribution(scores)
}
