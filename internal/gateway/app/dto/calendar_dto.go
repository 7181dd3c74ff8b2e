// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import "time"

// CalendarEntity - одно уведомление о сроке документа.
type CalendarEntity struct {
	DocumentID       string     `json:"document_id"`
	NotificationID   string     `json:"notification_id"`
	DocumentTitle    string     `json:"document_title"`
	NotificationDate *time.Time `json:"notification_date"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// PublishCalendarRequest - тело запроса публикации календаря.
type PublishCalendarRequest struct {
	Timezone string           `json:"timezone"`
	Entities []CalendarEntity `json:"entities"`
}

// CalendarResponse - ответ на публикацию календаря.
type CalendarResponse struct {
	CalendarID string    `json:"calendar_id"`
	Timezone   string    `json:"timezone"`
	UpdatedAt  time.Time `json:"updated_at"`
	ICSPath    string    `json:"ics_path"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
