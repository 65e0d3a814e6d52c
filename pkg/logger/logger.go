package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger so the rest of the code base depends on a single type.
type Logger struct {
	*zap.Logger
}

// New builds a logger for the given level ("debug", "info", "warn", "error") and encoding ("json" or "console").
func New(level, encoding string) (*Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if encoding == "" {
		encoding = "json"
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{Logger: zl}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// DebugContext logs at debug level with request scoped fields taken from ctx.
func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.wrapped().Debug(msg, append(fields, contextFields(ctx)...)...)
}

// InfoContext logs at info level with request scoped fields taken from ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.wrapped().Info(msg, append(fields, contextFields(ctx)...)...)
}

// WarnContext logs at warn level with request scoped fields taken from ctx.
func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.wrapped().Warn(msg, append(fields, contextFields(ctx)...)...)
}

// ErrorContext logs at error level with request scoped fields taken from ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.wrapped().Error(msg, append(fields, contextFields(ctx)...)...)
}

// wrapped reports the caller of the *Context method instead of the method itself.
func (l *Logger) wrapped() *zap.Logger {
	return l.Logger.WithOptions(zap.AddCallerSkip(1))
}

type ctxKey struct{}

// WithFields stores fields on the context so every *Context log call downstream carries them.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing := contextFields(ctx)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func contextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]zap.Field)
	return fields
}

// Field creates a field of any type.
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

// StringField creates a string field.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64Field creates a float64 field.
func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// DurationField creates a duration field.
func DurationField(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}

// ErrorField creates an error field.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}
