package config

import (
	"errors"
	"fmt"
)

// KeySize - длина ключа AES-256 в байтах.
const KeySize = 32

// ErrInvalidKeyLength возвращается, если ключ шифрования не 32 байта.
var ErrInvalidKeyLength = errors.New("encryption key must be exactly 32 bytes")

// EncryptionConfig содержит общий ключ шифрования документов.
type EncryptionConfig struct {
	Key string `yaml:"key" env:"CALENDAR_ENCRYPTION_KEY" env-required:"true"`
}

// Validate проверяет длину ключа.
func (e *EncryptionConfig) Validate() error {
	if len(e.Key) != KeySize {
		return fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(e.Key))
	}
	return nil
}

// KeyBytes возвращает ключ в виде байтов.
func (e *EncryptionConfig) KeyBytes() []byte {
	return []byte(e.Key)
}
