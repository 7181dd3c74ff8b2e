// Package repositories описывает порты хранилища документов.
package repositories

import (
	"context"
)

// DocumentRepository хранит зашифрованные документы целиком по идентификатору.
type DocumentRepository interface {
	// Save атомарно заменяет документ.
	Save(ctx context.Context, id string, blob []byte) error
	// Load возвращает документ или domain.ErrNotFound.
	Load(ctx context.Context, id string) ([]byte, error)
}
