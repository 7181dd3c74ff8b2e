// Package grpc определяет интерфейсы для взаимодействия с gRPC сервисами.
package grpc

import (
	"context"

	calendarv1 "calendarvault/pkg/api/calendar/v1"
)

// CalendarServiceClient определяет интерфейс для взаимодействия с сервисом календарей.
type CalendarServiceClient interface {
	CreateCalendar(ctx context.Context, req *calendarv1.CreateCalendarRequest) error

	GetCalendar(ctx context.Context, calendarID string, iv []byte) ([]byte, error)

	Close() error
}
