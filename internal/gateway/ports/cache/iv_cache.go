// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"errors"
)

// ErrCorruptIV возвращается, если в кэше лежит значение, не являющееся nonce.
var ErrCorruptIV = errors.New("cached calendar iv is corrupt")

// IVCache хранит копии nonce из реестра календарей.
type IVCache interface {
	// GetIV возвращает nil без ошибки, если nonce нет в кэше.
	GetIV(ctx context.Context, calendarID string) ([]byte, error)

	SetIV(ctx context.Context, calendarID string, iv []byte) error

	DeleteIV(ctx context.Context, calendarID string) error

	Close() error
}
