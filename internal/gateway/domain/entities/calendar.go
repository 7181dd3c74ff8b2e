// Package entities описывает доменные сущности Gateway.
package entities

import (
	"errors"
	"regexp"
	"time"
)

// IVSize - длина nonce календаря в байтах.
const IVSize = 12

// Ошибки предметной области Gateway.
var (
	ErrInvalidCalendarID  = errors.New("calendar id must be 32 alphanumeric characters")
	ErrInvalidRequest     = errors.New("invalid calendar request")
	ErrCalendarNotFound   = errors.New("calendar not found")
	ErrCalendarForbidden  = errors.New("calendar belongs to another user")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("calendar service unavailable")
)

var calendarIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

// Calendar - запись реестра опубликованных календарей.
type Calendar struct {
	ID        string    `json:"calendar_id"`
	UserID    string    `json:"user_id"`
	IV        []byte    `json:"-"`
	Timezone  string    `json:"timezone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy сообщает, принадлежит ли календарь пользователю.
func (c *Calendar) OwnedBy(userID string) bool {
	return c.UserID == userID
}

// ValidateCalendarID проверяет идентификатор календаря.
func ValidateCalendarID(id string) error {
	if !calendarIDPattern.MatchString(id) {
		return ErrInvalidCalendarID
	}
	return nil
}
