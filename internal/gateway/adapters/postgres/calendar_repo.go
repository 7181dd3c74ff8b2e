// Package postgres содержит реестр календарей в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"calendarvault/internal/gateway/domain/entities"
	"calendarvault/internal/gateway/ports/repositories"
	"calendarvault/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogFindCalendar   = "finding calendar"
	LogUpsertCalendar = "upserting calendar"
	LogDeleteCalendar = "deleting calendar"

	ErrFindCalendar   = "failed to find calendar"
	ErrUpsertCalendar = "failed to upsert calendar"
	ErrDeleteCalendar = "failed to delete calendar"
)

const (
	queryFindCalendar = `SELECT calendar_id, user_id, calendar_iv, timezone, updated_at
         FROM calendars
         WHERE calendar_id = $1`

	// Строка другого владельца не перезаписывается.
	queryUpsertCalendar = `INSERT INTO calendars (calendar_id, user_id, calendar_iv, timezone, updated_at)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (calendar_id) DO UPDATE
         SET calendar_iv = EXCLUDED.calendar_iv, timezone = EXCLUDED.timezone, updated_at = EXCLUDED.updated_at
         WHERE calendars.user_id = EXCLUDED.user_id`

	queryDeleteCalendar = `DELETE FROM calendars WHERE calendar_id = $1 AND user_id = $2`
)

// Pool - часть pgxpool.Pool, нужная репозиторию.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CalendarRepository реализует repositories.CalendarRepository.
type CalendarRepository struct {
	pool Pool
}

// NewCalendarRepository создает новый репозиторий календарей.
func NewCalendarRepository(pool Pool) repositories.CalendarRepository {
	return &CalendarRepository{pool: pool}
}

// FindByID получает запись календаря по идентификатору.
func (r *CalendarRepository) FindByID(ctx context.Context, calendarID string) (*entities.Calendar, error) {
	log := logger.Log(ctx).With(zap.String("method", "CalendarRepository.FindByID"))
	log.Debug(ctx, LogFindCalendar, zap.String("calendarID", calendarID))

	var calendar entities.Calendar
	err := r.pool.QueryRow(ctx, queryFindCalendar, calendarID).
		Scan(&calendar.ID, &calendar.UserID, &calendar.IV, &calendar.Timezone, &calendar.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", ErrFindCalendar, entities.ErrCalendarNotFound)
		}
		log.Error(ctx, ErrFindCalendar, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindCalendar, err)
	}

	return &calendar, nil
}

// Upsert создает или обновляет запись календаря владельца.
func (r *CalendarRepository) Upsert(ctx context.Context, calendar *entities.Calendar) error {
	log := logger.Log(ctx).With(zap.String("method", "CalendarRepository.Upsert"))
	log.Debug(ctx, LogUpsertCalendar, zap.String("calendarID", calendar.ID))

	tag, err := r.pool.Exec(ctx, queryUpsertCalendar,
		calendar.ID, calendar.UserID, calendar.IV, calendar.Timezone, calendar.UpdatedAt)
	if err != nil {
		log.Error(ctx, ErrUpsertCalendar, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpsertCalendar, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ErrUpsertCalendar, entities.ErrCalendarForbidden)
	}

	return nil
}

// Delete удаляет запись календаря владельца. Отсутствие записи не считается ошибкой.
func (r *CalendarRepository) Delete(ctx context.Context, calendarID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CalendarRepository.Delete"))
	log.Debug(ctx, LogDeleteCalendar, zap.String("calendarID", calendarID))

	if _, err := r.pool.Exec(ctx, queryDeleteCalendar, calendarID, userID); err != nil {
		log.Error(ctx, ErrDeleteCalendar, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteCalendar, err)
	}

	return nil
}
