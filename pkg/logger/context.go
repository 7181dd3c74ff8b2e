package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки пакета logger.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
)

var (
	globalMu sync.RWMutex
	global   *Logger
)

// fallback используется, пока глобальный logger не установлен: пишет только warn и выше.
var fallback = sync.OnceValue(func() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zl, err := cfg.Build()
	if err != nil {
		return NewNop()
	}
	return &Logger{l: zl.With(zap.String("logger", "fallback"))}
})

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext достает logger, положенный через NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*Logger); ok {
			return log, nil
		}
	}
	return nil, ErrLoggerNotFound
}

// InitGlobalLogger устанавливает глобальный logger с уровнем по умолчанию.
func InitGlobalLogger(env Environment) error {
	return InitGlobalLoggerWithLevel(env, "")
}

// InitGlobalLoggerWithLevel устанавливает глобальный logger, если он еще не задан.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}

	log, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global = log
	return nil
}

// SetGlobalLogger заменяет глобальный logger. nil сбрасывает его.
func SetGlobalLogger(log *Logger) {
	globalMu.Lock()
	global = log
	globalMu.Unlock()
}

// Log возвращает logger из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if log, err := FromContext(ctx); err == nil {
		return log
	}

	globalMu.RLock()
	log := global
	globalMu.RUnlock()
	if log != nil {
		return log
	}
	return fallback()
}
