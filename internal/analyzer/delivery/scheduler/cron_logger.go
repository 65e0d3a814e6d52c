package scheduler

import (
	"golang-news-insight/pkg/logger"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's own messages into the application logger.
type cronLogger struct {
	logger *logger.Logger
}

var _ cron.Logger = cronLogger{}

// Info is used by cron for scheduling chatter, so it is logged at debug level.
func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
