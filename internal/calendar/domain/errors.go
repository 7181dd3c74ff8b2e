// Package domain содержит ошибки и чистые функции домена календарей.
package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок хранилища документов.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("calendar not found")
	ErrEncryption = errors.New("encryption failed")
	ErrDecryption = errors.New("decryption failed")
	ErrIO         = errors.New("storage i/o failed")
	ErrRender     = errors.New("calendar rendering failed")
)

// Уточненные ошибки. Каждая оборачивает свой класс и проверяется через errors.Is.
var (
	ErrInvalidNonce      = fmt.Errorf("%w: nonce must be %d bytes", ErrValidation, NonceSize)
	ErrInvalidTimezone   = fmt.Errorf("%w: unknown timezone", ErrValidation)
	ErrInvalidDocumentID = fmt.Errorf("%w: invalid document id", ErrValidation)
	ErrMissingDate       = fmt.Errorf("%w: notification date is required", ErrValidation)

	ErrAuthentication = fmt.Errorf("%w: message authentication failed", ErrDecryption)
	ErrInvalidPadding = fmt.Errorf("%w: invalid padding", ErrDecryption)
	ErrInvalidText    = fmt.Errorf("%w: plaintext is not valid UTF-8", ErrDecryption)
)

// NonceSize - длина nonce AES-GCM в байтах.
const NonceSize = 12

// ValidateNonce проверяет длину nonce.
func ValidateNonce(nonce []byte) error {
	if len(nonce) != NonceSize {
		return fmt.Errorf("%w: got %d", ErrInvalidNonce, len(nonce))
	}
	return nil
}
