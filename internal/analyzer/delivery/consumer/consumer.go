package consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"
)

// TaskProcessor handles at most one stream message per call.
type TaskProcessor interface {
	ProcessTask(ctx context.Context)
}

// RedisConsumer manages the consumption of articles from the Redis stream.
type RedisConsumer struct {
	cfg       *config.Config
	processor func(worker int) TaskProcessor
	logger    *logger.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer. newProcessor builds the processor for each worker.
func NewRedisConsumer(cfg *config.Config, newProcessor func(worker int) TaskProcessor, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:       cfg,
		processor: newProcessor,
		logger:    log,
		stopChan:  make(chan struct{}),
	}
}

// ConsumerName returns the stream consumer name of a worker.
func ConsumerName(worker int) string {
	return fmt.Sprintf("%s-%d", common.RedisStreamConsumer, worker)
}

// Start launches the configured number of workers.
func (c *RedisConsumer) Start(ctx context.Context) {
	workers := c.cfg.Consumer.Workers
	if workers <= 0 {
		workers = 1
	}
	c.logger.Info("Redis consumer started", logger.IntField("workers", workers))
	for i := 0; i < workers; i++ {
		c.RegisterStreamHandler(ctx, c.processor(i).ProcessTask, ConsumerName(i), c.cfg.Consumer.Timeout)
	}
}

// RegisterStreamHandler runs fn in a loop until the consumer stops, bounding each call by timeout.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), name string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", common.RedisStreamArticleAnalyze), logger.StringField("consumer", name))
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	c.wg.Add(1)
	utils.GoSafe(c.logger, func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation", logger.StringField("consumer", name))
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping", logger.StringField("consumer", name))
				return
			default:
				c.handle(ctx, fn, name, timeout)
			}
		}
	})
}

// handle runs a single fn call; a panic is logged and the worker moves on to the next message.
func (c *RedisConsumer) handle(ctx context.Context, fn func(ctx context.Context), name string, timeout time.Duration) {
	ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	defer utils.Recover(c.logger.With(logger.StringField("consumer", name)), "Recovered from panic while processing stream message")
	fn(ctxTimeout)
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
