// Package app реализует бизнес-логику хранилища зашифрованных календарей.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"calendarvault/internal/calendar/domain"
	"calendarvault/internal/calendar/domain/entities"
	"calendarvault/internal/calendar/ports/repositories"
	"calendarvault/internal/calendar/ports/services"
	"calendarvault/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogCalendarStored = "calendar stored"
	LogCalendarRead   = "calendar read"

	ErrRenderCalendar  = "failed to render calendar"
	ErrEncryptCalendar = "failed to encrypt calendar"
	ErrStoreCalendar   = "failed to store calendar"
	ErrLoadCalendar    = "failed to load calendar"
	ErrDecryptCalendar = "failed to decrypt calendar"
)

// CalendarUseCase связывает рендеринг, шифрование и хранение документов.
type CalendarUseCase struct {
	renderer services.Renderer
	codec    services.Codec
	repo     repositories.DocumentRepository
}

// NewCalendarUseCase создает CalendarUseCase.
func NewCalendarUseCase(renderer services.Renderer, codec services.Codec, repo repositories.DocumentRepository) *CalendarUseCase {
	return &CalendarUseCase{
		renderer: renderer,
		codec:    codec,
		repo:     repo,
	}
}

// CreateCalendar рендерит, шифрует и атомарно сохраняет календарь.
// При ошибке проверки хранилище не затрагивается.
func (uc *CalendarUseCase) CreateCalendar(
	ctx context.Context,
	calendarID string,
	notifications []entities.Notification,
	timezone string,
	iv []byte,
) error {
	log := logger.Log(ctx).With(zap.String("calendar_id", calendarID))

	if err := domain.ValidateNonce(iv); err != nil {
		return err
	}
	loc, err := domain.LoadTimezone(timezone)
	if err != nil {
		return err
	}
	if err := domain.ValidateDocumentID(calendarID); err != nil {
		return err
	}

	document, err := uc.renderer.Render(notifications, loc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrRenderCalendar, err)
	}

	blob, err := uc.codec.Encrypt(document, iv)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncryptCalendar, err)
	}

	if err := uc.repo.Save(ctx, calendarID, blob); err != nil {
		return fmt.Errorf("%s: %w", ErrStoreCalendar, err)
	}

	log.Info(ctx, LogCalendarStored,
		zap.Int("events", len(notifications)),
		zap.String("timezone", timezone))
	return nil
}

// GetCalendar загружает и расшифровывает календарь.
func (uc *CalendarUseCase) GetCalendar(ctx context.Context, calendarID string, iv []byte) (string, error) {
	log := logger.Log(ctx).With(zap.String("calendar_id", calendarID))

	if err := domain.ValidateNonce(iv); err != nil {
		return "", err
	}
	if err := domain.ValidateDocumentID(calendarID); err != nil {
		return "", err
	}

	blob, err := uc.repo.Load(ctx, calendarID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrLoadCalendar, err)
	}

	document, err := uc.codec.Decrypt(blob, iv)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrDecryptCalendar, err)
	}

	log.Debug(ctx, LogCalendarRead, zap.Int("size", len(document)))
	return document, nil
}
