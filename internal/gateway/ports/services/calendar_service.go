// Package services определяет интерфейсы сервисов Gateway.
package services

import (
	"context"

	"calendarvault/internal/gateway/app/dto"
)

// CalendarService публикует и выдает календари.
type CalendarService interface {
	// Publish перестраивает календарь пользователя со свежим nonce.
	Publish(ctx context.Context, userID, calendarID string, req *dto.PublishCalendarRequest) (*dto.CalendarResponse, error)

	// Download возвращает ICS документ по публичному идентификатору.
	Download(ctx context.Context, calendarID string) ([]byte, error)
}
