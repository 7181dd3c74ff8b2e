package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // база часовых поясов на случай отсутствия zoneinfo в системе
)

// LoadTimezone разрешает идентификатор часового пояса IANA.
// Пустая строка и "Local" отклоняются: результат не должен зависеть от окружения процесса.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

// ValidateDocumentID проверяет, что идентификатор является локальным относительным путем.
func ValidateDocumentID(id string) error {
	if id == "" || strings.ContainsRune(id, 0) || !filepath.IsLocal(id) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}
	return nil
}
