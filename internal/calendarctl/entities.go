package calendarctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"calendarvault/internal/calendar/domain"
	"calendarvault/internal/calendar/domain/entities"
)

// ErrEmptyFile возвращается, если путь к файлу уведомлений не задан.
var ErrEmptyFile = errors.New("--file is required")

type notificationJSON struct {
	DocumentID       string     `json:"document_id"`
	NotificationID   string     `json:"notification_id"`
	DocumentTitle    string     `json:"document_title"`
	NotificationDate *time.Time `json:"notification_date"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

// ReadNotifications читает JSON массив уведомлений; "-" означает stdin.
func ReadNotifications(path string, stdin io.Reader) ([]entities.Notification, error) {
	if path == "" {
		return nil, ErrEmptyFile
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open notifications: %w", err)
		}
		defer f.Close()
		r = f
	}

	var raw []notificationJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}

	result := make([]entities.Notification, 0, len(raw))
	for i, n := range raw {
		if n.NotificationDate == nil {
			return nil, fmt.Errorf("notification %d: %w", i, domain.ErrMissingDate)
		}
		notification := entities.Notification{
			NotificationID:   n.NotificationID,
			DocumentID:       n.DocumentID,
			DocumentTitle:    n.DocumentTitle,
			NotificationDate: *n.NotificationDate,
		}
		if n.ExpiresAt != nil {
			notification.ExpiresAt = *n.ExpiresAt
		}
		result = append(result, notification)
	}
	return result, nil
}
