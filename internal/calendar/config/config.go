// Package config содержит конфигурацию сервиса календарей.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "calendarvault/pkg/config"
	"calendarvault/pkg/logger"
)

// ServiceName - имя сервиса в журнале.
const ServiceName = "calendar"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "calendar service configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// ErrInvalidPort возвращается, если порт gRPC сервера вне диапазона.
var ErrInvalidPort = errors.New("grpc port must be in range 1-65535")

// Config представляет полную конфигурацию сервиса календарей.
type Config struct {
	GRPC       GRPCConfig       `yaml:"grpc"`
	Encryption EncryptionConfig `yaml:"encryption"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из окружения и проверяет ее.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами cleanenv.
func (c *Config) Validate() error {
	if c.GRPC.Port <= 0 || c.GRPC.Port > 65535 {
		return ErrInvalidPort
	}
	return c.Encryption.Validate()
}
