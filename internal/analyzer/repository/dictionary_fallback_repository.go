package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang-news-insight/internal/analyzer/dto"
)

// DictionaryFallbackRepository loads the static ticker list used when every live source fails.
type DictionaryFallbackRepository interface {
	Load(ctx context.Context) ([]dto.TickerEntry, error)
}

type fileDictionaryRepository struct {
	path string
}

// NewFileDictionaryRepository reads a JSON file holding either the screener payload or a plain
// [{"s","n"}] array. An empty path yields no entries.
func NewFileDictionaryRepository(path string) DictionaryFallbackRepository {
	return &fileDictionaryRepository{path: path}
}

func (r *fileDictionaryRepository) Load(_ context.Context) ([]dto.TickerEntry, error) {
	if r.path == "" {
		return []dto.TickerEntry{}, nil
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback dictionary %s: %w", r.path, err)
	}

	var wrapped dto.ScreenerResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data.Data, nil
	}
	var plain []dto.TickerEntry
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	return nil, fmt.Errorf("%w: fallback dictionary %s has an unknown shape", ErrUnexpectedPayload, r.path)
}
