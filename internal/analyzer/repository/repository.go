package repository

import (
	"errors"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrUnexpectedStatus is returned when a collaborator answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrUnexpectedPayload is returned when a collaborator answers with a body of the wrong shape.
	ErrUnexpectedPayload = errors.New("unexpected payload")
	// ErrCacheMiss is returned when no cached value exists.
	ErrCacheMiss = errors.New("cache miss")
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// newRequestLimiter allows perMinute requests per minute, or unlimited when perMinute is not positive.
func newRequestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

func timeoutOrDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
