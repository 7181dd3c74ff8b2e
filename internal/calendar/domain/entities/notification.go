// Package entities содержит сущности домена календарей.
package entities

import (
	"time"
)

// Notification - уведомление о сроке действия документа. Одно уведомление
// становится одним событием календаря.
type Notification struct {
	NotificationID   string
	DocumentID       string
	DocumentTitle    string
	NotificationDate time.Time
	ExpiresAt        time.Time
}
