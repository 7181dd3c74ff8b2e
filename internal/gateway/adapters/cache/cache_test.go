package cache_test

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendarvault/internal/gateway/adapters/cache"
	"calendarvault/internal/gateway/config"
	cachePorts "calendarvault/internal/gateway/ports/cache"
)

const calendarID = "0123456789abcdef0123456789ABCDEF"

func newRedis(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, cachePorts.IVCache) {
	t.Helper()

	s := miniredis.RunT(t)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c, err := cache.NewRedisCache(context.Background(), &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       2,
		DefaultTTL:     ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return s, c
}

func TestNewRedisCacheConnectionFailure(t *testing.T) {
	c, err := cache.NewRedisCache(context.Background(), &config.RedisConfig{
		Host:           "127.0.0.1",
		Port:           1,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), cache.ErrorFailedToConnect)
}

func TestRedisCacheIV(t *testing.T) {
	ctx := context.Background()
	s, c := newRedis(t, 10*time.Minute)
	iv := []byte("0123456789ab")

	got, err := c.GetIV(ctx, calendarID)
	require.NoError(t, err)
	assert.Nil(t, got, "missing key is not an error")

	require.NoError(t, c.SetIV(ctx, calendarID, iv))
	assert.Equal(t, hex.EncodeToString(iv), mustGet(t, s, cache.KeyPrefix+calendarID))
	assert.InDelta(t, (10 * time.Minute).Seconds(), s.TTL(cache.KeyPrefix+calendarID).Seconds(), 5)

	got, err = c.GetIV(ctx, calendarID)
	require.NoError(t, err)
	assert.Equal(t, iv, got)

	require.NoError(t, c.DeleteIV(ctx, calendarID))
	assert.False(t, s.Exists(cache.KeyPrefix+calendarID))
}

func TestRedisCacheRejectsWrongIVLength(t *testing.T) {
	s, c := newRedis(t, time.Minute)

	require.Error(t, c.SetIV(context.Background(), calendarID, []byte("short")))
	assert.False(t, s.Exists(cache.KeyPrefix+calendarID))
}

func TestRedisCacheCorruptIV(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not hex", "zz"},
		{"wrong length", hex.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newRedis(t, time.Minute)
			require.NoError(t, s.Set(cache.KeyPrefix+calendarID, tt.value))

			got, err := c.GetIV(context.Background(), calendarID)
			require.ErrorIs(t, err, cachePorts.ErrCorruptIV)
			assert.Nil(t, got)
		})
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	s, c := newRedis(t, time.Minute)

	require.NoError(t, c.SetIV(ctx, calendarID, []byte("0123456789ab")))
	s.FastForward(2 * time.Minute)

	got, err := c.GetIV(ctx, calendarID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheServerErrors(t *testing.T) {
	ctx := context.Background()
	s, c := newRedis(t, time.Minute)

	s.SetError("READONLY replica")

	_, err := c.GetIV(ctx, calendarID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cache.ErrorFailedToGet)

	err = c.SetIV(ctx, calendarID, []byte("0123456789ab"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), cache.ErrorFailedToSet)

	err = c.DeleteIV(ctx, calendarID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cache.ErrorFailedToDelete)
}

func mustGet(t *testing.T, s *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := s.Get(key)
	require.NoError(t, err)
	return v
}
