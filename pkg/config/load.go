// Package config предоставляет загрузку конфигурации сервисов из переменных окружения
// и необязательного файла.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"calendarvault/pkg/logger"
)

// PathEnv - переменная окружения с путем к файлу конфигурации.
const PathEnv = "CONFIG_PATH"

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgConfigFileMissing       = "configuration file not found, using environment only"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedReadConfigFile    = "failed to read configuration file"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет конфигурацию типа T. Если задан CONFIG_PATH и файл существует,
// значения читаются из файла, иначе только из окружения. Переменные окружения
// имеют приоритет над файлом.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var cfg T
	path := os.Getenv(PathEnv)

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedReadConfigFile, err)
			}
			log.Info(ctx, msgConfigurationLoaded)
			return &cfg, nil
		case errors.Is(statErr, fs.ErrNotExist):
			log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
		default:
			log.Error(ctx, msgFailedLoadConfiguration, zap.Error(statErr))
			return nil, fmt.Errorf("%s: %w", errFailedReadConfigFile, statErr)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
