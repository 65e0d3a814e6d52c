package strategy

import (
	"context"
)

// JobType identifies a scheduled job.
type JobType string

const (
	JobTypeNewsScraper       JobType = "news_scraper"
	JobTypeDictionaryRefresh JobType = "dictionary_refresh"
)

// Per-feed outcome of a job run.
const (
	SUCCESS = "success"
	FAILED  = "failed"
	SKIPPED = "skipped"
)

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	// Execute runs the job and returns a JSON report of what it did.
	Execute(ctx context.Context) (string, error)
	GetType() JobType
}
