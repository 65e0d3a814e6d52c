package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"
)

// DictionaryRefreshStrategy reloads the ticker dictionary.
type DictionaryRefreshStrategy struct {
	dictionaryService service.DictionaryService
	logger            *logger.Logger
}

// NewDictionaryRefreshStrategy creates a new instance of DictionaryRefreshStrategy.
func NewDictionaryRefreshStrategy(dictionaryService service.DictionaryService, log *logger.Logger) *DictionaryRefreshStrategy {
	return &DictionaryRefreshStrategy{dictionaryService: dictionaryService, logger: log}
}

// GetType returns the job type this strategy handles.
func (s *DictionaryRefreshStrategy) GetType() JobType {
	return JobTypeDictionaryRefresh
}

// Execute refreshes the dictionary. Fallbacks are reported in the output, not as errors.
func (s *DictionaryRefreshStrategy) Execute(ctx context.Context) (string, error) {
	result := s.dictionaryService.Refresh(ctx)
	s.logger.Info("Dictionary refresh finished",
		logger.StringField("source", result.Source),
		logger.IntField("tickers", result.Tickers),
	)
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(out), nil
}
