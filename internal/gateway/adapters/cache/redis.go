// Package cache хранит nonce календарей в Redis.
package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"calendarvault/internal/gateway/config"
	"calendarvault/internal/gateway/domain/entities"
	"calendarvault/internal/gateway/ports/cache"
	"calendarvault/pkg/logger"
)

// KeyPrefix - префикс ключей nonce. Значение хранится в hex.
const KeyPrefix = "calendar:iv:"

// Константы для логирования.
const (
	LogMethodGetIV    = "RedisCache.GetIV"
	LogMethodSetIV    = "RedisCache.SetIV"
	LogMethodDeleteIV = "RedisCache.DeleteIV"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToGet     = "failed to get calendar iv from redis"
	ErrorFailedToSet     = "failed to set calendar iv in redis"
	ErrorFailedToDelete  = "failed to delete calendar iv from redis"
	ErrorFailedToClose   = "failed to close redis connection"
)

// RedisCache реализует cache.IVCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.IVCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisCache{client: client, ttl: cfg.DefaultTTL}, nil
}

func key(calendarID string) string {
	return KeyPrefix + calendarID
}

// GetIV читает nonce календаря.
func (c *RedisCache) GetIV(ctx context.Context, calendarID string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key(calendarID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		logger.Log(ctx).With(zap.String("method", LogMethodGetIV), zap.String("calendarID", calendarID)).
			Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	iv, err := hex.DecodeString(raw)
	if err != nil || len(iv) != entities.IVSize {
		return nil, fmt.Errorf("%w: %q", cache.ErrCorruptIV, raw)
	}
	return iv, nil
}

// SetIV сохраняет nonce на время жизни из конфигурации.
func (c *RedisCache) SetIV(ctx context.Context, calendarID string, iv []byte) error {
	if len(iv) != entities.IVSize {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, entities.ErrInvalidRequest)
	}

	if err := c.client.Set(ctx, key(calendarID), hex.EncodeToString(iv), c.ttl).Err(); err != nil {
		logger.Log(ctx).With(zap.String("method", LogMethodSetIV), zap.String("calendarID", calendarID)).
			Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// DeleteIV удаляет nonce календаря.
func (c *RedisCache) DeleteIV(ctx context.Context, calendarID string) error {
	if err := c.client.Del(ctx, key(calendarID)).Err(); err != nil {
		logger.Log(ctx).With(zap.String("method", LogMethodDeleteIV), zap.String("calendarID", calendarID)).
			Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
