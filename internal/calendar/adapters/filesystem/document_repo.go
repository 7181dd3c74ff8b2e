// Package filesystem хранит зашифрованные документы в файлах.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"calendarvault/internal/calendar/domain"
	"calendarvault/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDocumentSaved  = "document saved"
	LogDocumentLoaded = "document loaded"
	ErrSaveDocument   = "failed to save document"
	ErrLoadDocument   = "failed to load document"

	dirPerm  fs.FileMode = 0o750
	filePerm fs.FileMode = 0o600
)

// DocumentRepository хранит каждый документ в файле <base>/<id>.
type DocumentRepository struct {
	baseDir string
}

// NewDocumentRepository создает хранилище в каталоге baseDir.
func NewDocumentRepository(baseDir string) *DocumentRepository {
	return &DocumentRepository{baseDir: baseDir}
}

// Path возвращает путь к файлу документа.
func (r *DocumentRepository) Path(id string) (string, error) {
	if err := domain.ValidateDocumentID(id); err != nil {
		return "", err
	}
	return filepath.Join(r.baseDir, id), nil
}

// Save записывает документ во временный файл рядом с целевым и переименовывает его,
// так что читатели видят либо старую, либо новую версию целиком.
func (r *DocumentRepository) Save(ctx context.Context, id string, blob []byte) error {
	log := logger.Log(ctx).With(zap.String("document_id", id))

	path, err := r.Path(id)
	if err != nil {
		return err
	}

	if err := writeAtomic(path, blob); err != nil {
		log.Error(ctx, ErrSaveDocument, zap.Error(err))
		return fmt.Errorf("%w: %s: %w", domain.ErrIO, ErrSaveDocument, err)
	}

	log.Debug(ctx, LogDocumentSaved, zap.Int("size", len(blob)))
	return nil
}

// Load читает документ целиком.
func (r *DocumentRepository) Load(ctx context.Context, id string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("document_id", id))

	path, err := r.Path(id)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		log.Error(ctx, ErrLoadDocument, zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrIO, ErrLoadDocument, err)
	}

	log.Debug(ctx, LogDocumentLoaded, zap.Int("size", len(blob)))
	return blob, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
