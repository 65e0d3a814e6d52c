package utils

import (
	"context"
	"runtime/debug"

	"golang-news-insight/pkg/logger"
)

// GoSafe runs fn in a goroutine and logs panics instead of crashing the process.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer Recover(log, "Recovered from panic in goroutine")
		fn()
	}()
}

// Recover logs a recovered panic with its stack. It must be deferred directly.
func Recover(log *logger.Logger, msg string) {
	if r := recover(); r != nil {
		log.Error(msg, logger.Field("panic", r), logger.StringField("stack", string(debug.Stack())))
	}
}

// ShouldContinue reports whether ctx is still alive, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
