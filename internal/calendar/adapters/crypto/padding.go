// Package crypto реализует шифрование документов AES-256-GCM с байтовым дополнением.
package crypto

import (
	"fmt"

	"calendarvault/internal/calendar/domain"
)

// BlockSize - размер блока дополнения.
const BlockSize = 16

// Pad дополняет данные до кратного BlockSize, всегда добавляя от 1 до BlockSize байт
// со значением, равным числу добавленных байт.
func Pad(data []byte) []byte {
	pad := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data), len(data)+pad)
	copy(out, data)
	for range pad {
		out = append(out, byte(pad))
	}
	return out
}

// Unpad снимает дополнение. Последний байт задает его длину.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", domain.ErrInvalidPadding)
	}
	unpad := int(data[len(data)-1])
	if unpad > len(data) {
		return nil, fmt.Errorf("%w: pad %d exceeds length %d", domain.ErrInvalidPadding, unpad, len(data))
	}
	return data[:len(data)-unpad], nil
}
