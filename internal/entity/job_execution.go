package entity

import (
	"database/sql"
	"time"
)

// ExecutionStatus represents the state of a job run.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
)

// JobExecution records one run of a scheduled job.
type JobExecution struct {
	ID           uint            `gorm:"primaryKey"`
	JobType      string          `gorm:"index;not null"`
	Status       ExecutionStatus `gorm:"not null"`
	Output       sql.NullString  `gorm:"type:text"`
	ErrorMessage sql.NullString  `gorm:"type:text"`
	StartedAt    time.Time       `gorm:"index;not null"`
	CompletedAt  sql.NullTime
}

// TableName specifies the table name for the JobExecution model.
func (JobExecution) TableName() string {
	return "job_executions"
}
