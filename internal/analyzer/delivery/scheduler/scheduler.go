package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/analyzer/strategy"
	"golang-news-insight/internal/entity"
	"golang-news-insight/pkg/logger"

	"github.com/robfig/cron/v3"
)

// JobScheduler runs job strategies on cron schedules.
type JobScheduler struct {
	cron       *cron.Cron
	logger     *logger.Logger
	timeout    time.Duration
	strategies map[strategy.JobType]strategy.JobExecutionStrategy
	history    repository.JobExecutionRepository
	running    sync.Map
}

// NewJobScheduler creates a scheduler accepting standard five-field expressions and descriptors
// such as "@every 15m". Each run is bounded by timeout and recorded in history when it is not nil.
func NewJobScheduler(log *logger.Logger, timeout time.Duration, history repository.JobExecutionRepository) *JobScheduler {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	cl := cronLogger{logger: log}
	return &JobScheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		logger:     log,
		timeout:    timeout,
		strategies: make(map[strategy.JobType]strategy.JobExecutionStrategy),
		history:    history,
	}
}

// Register schedules s on spec. Runs of the same job never overlap.
func (j *JobScheduler) Register(ctx context.Context, spec string, s strategy.JobExecutionStrategy) error {
	j.strategies[s.GetType()] = s
	_, err := j.cron.AddFunc(spec, func() { j.run(ctx, s) })
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with %q: %w", s.GetType(), spec, err)
	}
	j.logger.Info("Job scheduled", logger.StringField("job", string(s.GetType())), logger.StringField("cron", spec))
	return nil
}

// RunNow executes a registered job immediately on the calling goroutine.
func (j *JobScheduler) RunNow(ctx context.Context, jobType strategy.JobType) error {
	s, ok := j.strategies[jobType]
	if !ok {
		return fmt.Errorf("no executor strategy found for job type: %s", jobType)
	}
	j.run(ctx, s)
	return nil
}

func (j *JobScheduler) run(ctx context.Context, s strategy.JobExecutionStrategy) {
	jobType := s.GetType()
	if _, busy := j.running.LoadOrStore(jobType, struct{}{}); busy {
		j.logger.Warn("Previous run still in progress, skipping", logger.StringField("job", string(jobType)))
		return
	}
	defer j.running.Delete(jobType)

	ctxTimeout, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	execution := j.startExecution(ctx, jobType)
	start := time.Now()
	output, err := j.execute(ctxTimeout, s)
	j.finishExecution(ctx, execution, output, err)
	if err != nil {
		j.logger.Error("Job execution failed", logger.ErrorField(err), logger.StringField("job", string(jobType)))
		return
	}
	j.logger.Info("Job executed successfully",
		logger.StringField("job", string(jobType)),
		logger.DurationField("duration", time.Since(start)),
		logger.StringField("output", output),
	)
}

// execute turns a strategy panic into a failed run so the execution record is still closed.
func (j *JobScheduler) execute(ctx context.Context, s strategy.JobExecutionStrategy) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("Job panicked", logger.Field("panic", r), logger.StringField("stack", string(debug.Stack())))
			err = fmt.Errorf("job %s panicked: %v", s.GetType(), r)
		}
	}()
	return s.Execute(ctx)
}

// startExecution stores a running record. It returns nil when history is disabled or the insert fails.
func (j *JobScheduler) startExecution(ctx context.Context, jobType strategy.JobType) *entity.JobExecution {
	if j.history == nil {
		return nil
	}
	execution := &entity.JobExecution{
		JobType:   string(jobType),
		Status:    entity.StatusRunning,
		StartedAt: time.Now(),
	}
	if err := j.history.Create(ctx, execution); err != nil {
		j.logger.Error("Failed to create job execution", logger.ErrorField(err), logger.StringField("job", string(jobType)))
		return nil
	}
	return execution
}

func (j *JobScheduler) finishExecution(ctx context.Context, execution *entity.JobExecution, output string, err error) {
	if execution == nil {
		return
	}
	execution.Status = entity.StatusCompleted
	if err != nil {
		execution.Status = entity.StatusFailed
		execution.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	}
	execution.Output = sql.NullString{String: output, Valid: output != ""}
	execution.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := j.history.Update(ctx, execution); err != nil {
		j.logger.Error("Failed to update job execution", logger.ErrorField(err), logger.IntField("execution_id", int(execution.ID)))
	}
}

// Start starts the cron loop and blocks until ctx is done.
func (j *JobScheduler) Start(ctx context.Context) {
	j.cron.Start()
	<-ctx.Done()
	j.logger.Info("Scheduler stopping")
	<-j.cron.Stop().Done()
}
