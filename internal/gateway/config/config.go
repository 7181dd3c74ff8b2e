// Package config содержит конфигурацию для Gateway сервиса.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "calendarvault/pkg/config"
	"calendarvault/pkg/logger"
)

// ServiceName - имя сервиса в журнале.
const ServiceName = "gateway"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "gateway configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию Gateway.
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	GRPC           GRPCClientConfig     `yaml:"grpc"`
	Logging        LoggingConfig        `yaml:"logging"`
	Shutdown       ShutdownConfig       `yaml:"shutdown"`
	Redis          RedisConfig          `yaml:"redis"`
	Postgres       PostgresConfig       `yaml:"postgres"`
	JWT            JWTConfig            `yaml:"jwt"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("calendar_service_address", cfg.GRPC.CalendarService.GetAddress()),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Duration("iv_cache_ttl", cfg.Redis.DefaultTTL))

	return cfg, nil
}
