package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"unicode/utf8"

	"calendarvault/internal/calendar/domain"
)

// KeySize - длина ключа AES-256.
const KeySize = 32

// ErrInvalidKey возвращается конструктором при ключе неверной длины.
var ErrInvalidKey = errors.New("encryption key must be 32 bytes")

// AEAD шифрует документы общим ключом. Безопасен для параллельного использования.
type AEAD struct {
	gcm cipher.AEAD
}

// NewAEAD создает шифратор для 32-байтового ключа.
func NewAEAD(key []byte) (*AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncryption, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncryption, err)
	}

	return &AEAD{gcm: gcm}, nil
}

// Encrypt дополняет текст и шифрует его. Результат - шифротекст с тегом в конце.
// Nonce обязан быть уникальным для каждого сообщения под одним ключом.
func (a *AEAD) Encrypt(plaintext string, nonce []byte) ([]byte, error) {
	if err := domain.ValidateNonce(nonce); err != nil {
		return nil, err
	}

	padded := Pad([]byte(plaintext))
	return a.gcm.Seal(padded[:0], nonce, padded, nil), nil
}

// Decrypt проверяет тег, расшифровывает и снимает дополнение.
func (a *AEAD) Decrypt(ciphertext []byte, nonce []byte) (string, error) {
	if err := domain.ValidateNonce(nonce); err != nil {
		return "", err
	}

	plain, err := a.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}

	unpadded, err := Unpad(plain)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(unpadded) {
		return "", domain.ErrInvalidText
	}
	return string(unpadded), nil
}
