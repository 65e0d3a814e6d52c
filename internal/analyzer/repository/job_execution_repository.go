package repository

import (
	"context"

	"golang-news-insight/internal/entity"

	"gorm.io/gorm"
)

// JobExecutionRepository defines the interface for job run history data operations.
type JobExecutionRepository interface {
	Create(ctx context.Context, execution *entity.JobExecution) error
	Update(ctx context.Context, execution *entity.JobExecution) error
	FindByID(ctx context.Context, id uint) (*entity.JobExecution, error)
	// FindRecent returns the newest runs first, optionally restricted to one job type.
	FindRecent(ctx context.Context, jobType string, limit int) ([]entity.JobExecution, error)
}

// NewJobExecutionRepository creates a new GORM-based job execution repository.
func NewJobExecutionRepository(db *gorm.DB) JobExecutionRepository {
	return &jobExecutionRepository{db: db}
}

type jobExecutionRepository struct {
	db *gorm.DB
}

func (r *jobExecutionRepository) Create(ctx context.Context, execution *entity.JobExecution) error {
	return r.db.WithContext(ctx).Create(execution).Error
}

func (r *jobExecutionRepository) Update(ctx context.Context, execution *entity.JobExecution) error {
	return r.db.WithContext(ctx).Updates(execution).Error
}

func (r *jobExecutionRepository) FindByID(ctx context.Context, id uint) (*entity.JobExecution, error) {
	var execution entity.JobExecution
	if err := r.db.WithContext(ctx).First(&execution, id).Error; err != nil {
		return nil, err
	}
	return &execution, nil
}

func (r *jobExecutionRepository) FindRecent(ctx context.Context, jobType string, limit int) ([]entity.JobExecution, error) {
	query := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC")
	if jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var executions []entity.JobExecution
	if err := query.Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}
