package service

import (
	"context"
	"errors"
	"fmt"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/entity"
	"golang-news-insight/pkg/logger"

	"gorm.io/gorm"
)

// ErrExecutionNotFound is returned when no job run has the requested ID.
var ErrExecutionNotFound = errors.New("job execution not found")

// JobExecutionService exposes the history of scheduled job runs.
type JobExecutionService interface {
	GetExecution(ctx context.Context, id uint) (*dto.JobExecutionResponse, error)
	ListExecutions(ctx context.Context, jobType string, limit int) ([]dto.JobExecutionResponse, error)
}

// NewJobExecutionService creates a new job execution service.
func NewJobExecutionService(executionRepo repository.JobExecutionRepository, log *logger.Logger) JobExecutionService {
	return &jobExecutionService{executionRepo: executionRepo, logger: log}
}

type jobExecutionService struct {
	executionRepo repository.JobExecutionRepository
	logger        *logger.Logger
}

func (s *jobExecutionService) GetExecution(ctx context.Context, id uint) (*dto.JobExecutionResponse, error) {
	execution, err := s.executionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExecutionNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to find job execution", logger.ErrorField(err), logger.Field("execution_id", id))
		return nil, fmt.Errorf("failed to find job execution: %w", err)
	}
	response := mapToJobExecutionResponse(execution)
	return &response, nil
}

func (s *jobExecutionService) ListExecutions(ctx context.Context, jobType string, limit int) ([]dto.JobExecutionResponse, error) {
	executions, err := s.executionRepo.FindRecent(ctx, jobType, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list job executions", logger.ErrorField(err), logger.StringField("job_type", jobType))
		return nil, fmt.Errorf("failed to list job executions: %w", err)
	}

	responses := make([]dto.JobExecutionResponse, 0, len(executions))
	for i := range executions {
		responses = append(responses, mapToJobExecutionResponse(&executions[i]))
	}
	return responses, nil
}

func mapToJobExecutionResponse(execution *entity.JobExecution) dto.JobExecutionResponse {
	var duration int64
	if execution.CompletedAt.Valid {
		duration = execution.CompletedAt.Time.Sub(execution.StartedAt).Milliseconds()
	}
	return dto.JobExecutionResponse{
		ID:         execution.ID,
		JobType:    execution.JobType,
		Status:     string(execution.Status),
		ExecutedAt: execution.StartedAt,
		Duration:   duration,
		Output:     execution.Output.String,
		Error:      execution.ErrorMessage.String,
	}
}
