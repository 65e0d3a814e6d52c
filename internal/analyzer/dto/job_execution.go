package dto

import "time"

// JobExecutionResponse is the API view of one scheduled job run.
type JobExecutionResponse struct {
	ID         uint      `json:"id"`
	JobType    string    `json:"job_type"`
	Status     string    `json:"status"`
	ExecutedAt time.Time `json:"executed_at"`
	Duration   int64     `json:"duration_ms"`
	Output     string    `json:"output"`
	Error      string    `json:"error,omitempty"`
}
