// Package services описывает порты сервисов, которыми пользуется бизнес-логика календарей.
package services

import (
	"time"

	"calendarvault/internal/calendar/domain/entities"
)

// Codec шифрует и расшифровывает документы общим ключом и nonce вызывающей стороны.
type Codec interface {
	Encrypt(plaintext string, nonce []byte) ([]byte, error)
	Decrypt(ciphertext []byte, nonce []byte) (string, error)
}

// Renderer превращает уведомления в документ iCalendar.
type Renderer interface {
	Render(notifications []entities.Notification, loc *time.Location) (string, error)
}
