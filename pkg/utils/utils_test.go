package utils

import (
	"context"
	"testing"
	"time"

	"golang-news-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{name: "monday", input: time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC), expected: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "wednesday", input: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), expected: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "sunday", input: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), expected: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "across month", input: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), expected: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartOfWeek(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2024-05-17")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), *d)

	_, err = ParseDate("17/05/2024")
	assert.Error(t, err)
}

func TestSafeText(t *testing.T) {
	assert.Equal(t, "abc", SafeText("a\x00b\xffc"))
	assert.Equal(t, "héllo", SafeText("héllo"))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, UniqueStrings([]string{"AAPL", "MSFT", "AAPL"}))
	assert.Empty(t, UniqueStrings(nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.1235, Round(0.123456, 4))
	assert.Equal(t, -0.333, Round(-1.0/3.0, 3))
	assert.Equal(t, 1.0, Round(1, 2))
}

func TestHashString(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", HashString(""))
	assert.NotEqual(t, HashString("a"), HashString("b"))
}

func TestShouldContinue(t *testing.T) {
	log := logger.NewNop()

	assert.True(t, ShouldContinue(context.Background(), log))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, ShouldContinue(ctx, log))
}

func TestGoSafe_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	done := make(chan struct{})
	GoSafe(&logger.Logger{Logger: zap.New(core)}, func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
	assert.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
	assert.Contains(t, entry.ContextMap()["stack"], "goroutine")
}

func TestRecover_NoPanicLogsNothing(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	func() {
		defer Recover(&logger.Logger{Logger: zap.New(core)}, "unused")
	}()
	assert.Zero(t, logs.Len())
}
