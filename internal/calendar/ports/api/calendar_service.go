// Package api описывает входной порт сервиса календарей.
package api

import (
	"context"

	"calendarvault/internal/calendar/domain/entities"
)

// CalendarUseCase определяет операции хранилища календарей.
type CalendarUseCase interface {
	CreateCalendar(ctx context.Context, calendarID string, notifications []entities.Notification, timezone string, iv []byte) error

	GetCalendar(ctx context.Context, calendarID string, iv []byte) (string, error)
}
