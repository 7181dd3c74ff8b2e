// Package repositories определяет интерфейсы хранилищ Gateway.
package repositories

import (
	"context"

	"calendarvault/internal/gateway/domain/entities"
)

// CalendarRepository хранит реестр календарей и их nonce.
type CalendarRepository interface {
	// FindByID возвращает entities.ErrCalendarNotFound, если записи нет.
	FindByID(ctx context.Context, calendarID string) (*entities.Calendar, error)

	// Upsert возвращает entities.ErrCalendarForbidden, если запись принадлежит другому пользователю.
	Upsert(ctx context.Context, calendar *entities.Calendar) error

	Delete(ctx context.Context, calendarID, userID string) error
}
