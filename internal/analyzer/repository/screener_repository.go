package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/logger"

	"golang.org/x/time/rate"
)

// DictionarySourceRepository fetches the live list of listed companies.
type DictionarySourceRepository interface {
	FetchEntries(ctx context.Context) ([]dto.TickerEntry, error)
}

type screenerRepository struct {
	sourceURL      string
	client         *http.Client
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewScreenerRepository creates a client for a stock screener returning {"data":{"data":[{"s","n"}]}}.
func NewScreenerRepository(cfg *config.Config, log *logger.Logger) DictionarySourceRepository {
	return &screenerRepository{
		sourceURL: cfg.Dictionary.SourceURL,
		client: &http.Client{
			Timeout: timeoutOrDefault(cfg.Dictionary.Timeout, 30*time.Second),
		},
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Dictionary.MaxRequestPerMinute),
	}
}

func (r *screenerRepository) FetchEntries(ctx context.Context) ([]dto.TickerEntry, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to fetch ticker list", logger.ErrorField(err), logger.StringField("url", r.sourceURL))
		return nil, fmt.Errorf("failed to fetch ticker list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Ticker list returned non-200 status", logger.IntField("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: ticker list returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed dto.ScreenerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	if parsed.Data == nil || parsed.Data.Data == nil {
		return nil, fmt.Errorf("%w: missing data.data", ErrUnexpectedPayload)
	}
	return parsed.Data.Data, nil
}
