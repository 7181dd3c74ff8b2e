// Package services содержит прикладную логику Gateway.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"calendarvault/internal/gateway/app/dto"
	"calendarvault/internal/gateway/domain/entities"
	"calendarvault/internal/gateway/ports/cache"
	"calendarvault/internal/gateway/ports/grpc"
	"calendarvault/internal/gateway/ports/repositories"
	"calendarvault/internal/gateway/ports/services"
	"calendarvault/internal/gateway/resilience"
	calendarv1 "calendarvault/pkg/api/calendar/v1"
	"calendarvault/pkg/logger"
)

// Константы для логирования.
const (
	LogServicePublish  = "calendar service: publish"
	LogServiceDownload = "calendar service: download"
	LogCalendarStored  = "calendar published"
	LogCacheMiss       = "calendar iv cache miss"

	ErrorPublishFailed   = "failed to publish calendar"
	ErrorDownloadFailed  = "failed to download calendar"
	ErrorGenerateIV      = "failed to generate calendar iv"
	ErrorCacheRead       = "failed to read calendar iv from cache"
	ErrorCacheWrite      = "failed to cache calendar iv"
	ErrorCorruptCachedIV = "cached calendar iv is corrupt"
	ErrorRestoreRegistry = "failed to restore calendar registry after rejected publish"
)

// ServiceName - имя сервиса календарей для circuit breaker.
const ServiceName = "calendar-service"

// ICSPathFormat - публичный путь загрузки календаря.
const ICSPathFormat = "/api/v1/calendars/%s/ics"

// CalendarServiceImpl реализация интерфейса CalendarService.
type CalendarServiceImpl struct {
	client     grpc.CalendarServiceClient
	repo       repositories.CalendarRepository
	cache      cache.IVCache
	resilience *resilience.ServiceResilience
	random     io.Reader
	now        func() time.Time
}

// Option настраивает CalendarServiceImpl.
type Option func(*CalendarServiceImpl)

// WithRandom задает источник случайных nonce.
func WithRandom(r io.Reader) Option {
	return func(s *CalendarServiceImpl) { s.random = r }
}

// WithClock задает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *CalendarServiceImpl) { s.now = now }
}

// NewCalendarService создает новый экземпляр сервиса календарей.
func NewCalendarService(
	client grpc.CalendarServiceClient,
	repo repositories.CalendarRepository,
	cache cache.IVCache,
	breaker resilience.CircuitBreakerConfig,
	opts ...Option,
) services.CalendarService {
	s := &CalendarServiceImpl{
		client:     client,
		repo:       repo,
		cache:      cache,
		resilience: resilience.NewServiceResilience(ServiceName, breaker),
		random:     rand.Reader,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish перестраивает календарь со свежим nonce.
// Nonce попадает в реестр до записи файла: документ никогда не зашифрован nonce,
// которого нет в реестре. Если сервис календарей отклонил запись, реестр откатывается.
func (s *CalendarServiceImpl) Publish(ctx context.Context, userID, calendarID string, req *dto.PublishCalendarRequest) (*dto.CalendarResponse, error) {
	log := logger.Log(ctx).With(zap.String("calendarID", calendarID))
	log.Info(ctx, LogServicePublish, zap.Int("entities", len(req.Entities)))

	if err := entities.ValidateCalendarID(calendarID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, err)
	}
	if userID == "" {
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, entities.ErrUnauthorized)
	}

	calendarEntities, err := toProtoEntities(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, err)
	}

	previous, err := s.repo.FindByID(ctx, calendarID)
	switch {
	case errors.Is(err, entities.ErrCalendarNotFound):
		previous = nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, err)
	case !previous.OwnedBy(userID):
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, entities.ErrCalendarForbidden)
	}

	iv := make([]byte, entities.IVSize)
	if _, err := io.ReadFull(s.random, iv); err != nil {
		log.Error(ctx, ErrorGenerateIV, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorGenerateIV, err)
	}

	calendar := &entities.Calendar{
		ID:        calendarID,
		UserID:    userID,
		IV:        iv,
		Timezone:  req.Timezone,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, calendar); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, err)
	}
	s.forgetIV(ctx, calendarID)

	err = s.resilience.ExecuteWithResilience(ctx, "CreateCalendar", func() error {
		return s.client.CreateCalendar(ctx, &calendarv1.CreateCalendarRequest{
			CalendarID:       calendarID,
			CalendarIV:       iv,
			CalendarEntities: calendarEntities,
			Timezone:         req.Timezone,
		})
	})
	if err != nil {
		s.restore(ctx, userID, calendarID, previous)
		return nil, fmt.Errorf("%s: %w", ErrorPublishFailed, mapCalendarError(err))
	}

	s.rememberIV(ctx, calendarID, iv)
	log.Info(ctx, LogCalendarStored)

	return &dto.CalendarResponse{
		CalendarID: calendarID,
		Timezone:   calendar.Timezone,
		UpdatedAt:  calendar.UpdatedAt,
		ICSPath:    fmt.Sprintf(ICSPathFormat, calendarID),
	}, nil
}

// Download возвращает ICS документ календаря.
func (s *CalendarServiceImpl) Download(ctx context.Context, calendarID string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("calendarID", calendarID))
	log.Debug(ctx, LogServiceDownload)

	if err := entities.ValidateCalendarID(calendarID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorDownloadFailed, err)
	}

	iv, err := s.lookupIV(ctx, calendarID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorDownloadFailed, err)
	}

	body, err := resilience.ExecuteWithResult(ctx, s.resilience, "GetCalendar", func() ([]byte, error) {
		return s.client.GetCalendar(ctx, calendarID, iv)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorDownloadFailed, mapCalendarError(err))
	}

	return body, nil
}

// restore возвращает реестр к состоянию до Publish.
func (s *CalendarServiceImpl) restore(ctx context.Context, userID, calendarID string, previous *entities.Calendar) {
	var err error
	if previous != nil {
		err = s.repo.Upsert(ctx, previous)
	} else {
		err = s.repo.Delete(ctx, calendarID, userID)
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorRestoreRegistry, zap.String("calendarID", calendarID), zap.Error(err))
	}
	s.forgetIV(ctx, calendarID)
}

func (s *CalendarServiceImpl) lookupIV(ctx context.Context, calendarID string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("calendarID", calendarID))

	iv, err := s.cache.GetIV(ctx, calendarID)
	switch {
	case errors.Is(err, cache.ErrCorruptIV):
		log.Warn(ctx, ErrorCorruptCachedIV, zap.Error(err))
		s.forgetIV(ctx, calendarID)
	case err != nil:
		log.Warn(ctx, ErrorCacheRead, zap.Error(err))
	case iv != nil:
		return iv, nil
	}

	log.Debug(ctx, LogCacheMiss)
	calendar, err := s.repo.FindByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}

	s.rememberIV(ctx, calendarID, calendar.IV)
	return calendar.IV, nil
}

func (s *CalendarServiceImpl) rememberIV(ctx context.Context, calendarID string, iv []byte) {
	if err := s.cache.SetIV(ctx, calendarID, iv); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorCacheWrite, zap.String("calendarID", calendarID), zap.Error(err))
		s.forgetIV(ctx, calendarID)
	}
}

func (s *CalendarServiceImpl) forgetIV(ctx context.Context, calendarID string) {
	if err := s.cache.DeleteIV(ctx, calendarID); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorCacheWrite, zap.String("calendarID", calendarID), zap.Error(err))
	}
}

func toProtoEntities(req *dto.PublishCalendarRequest) ([]*calendarv1.CalendarEntity, error) {
	if req == nil || req.Timezone == "" {
		return nil, entities.ErrInvalidRequest
	}

	result := make([]*calendarv1.CalendarEntity, 0, len(req.Entities))
	for i, e := range req.Entities {
		if e.NotificationDate == nil {
			return nil, fmt.Errorf("%w: entity %d has no notification_date", entities.ErrInvalidRequest, i)
		}
		entity := &calendarv1.CalendarEntity{
			DocumentID:       e.DocumentID,
			NotificationID:   e.NotificationID,
			DocumentTitle:    e.DocumentTitle,
			NotificationDate: timestamppb.New(*e.NotificationDate),
		}
		if e.ExpiresAt != nil {
			entity.ExpiresAt = timestamppb.New(*e.ExpiresAt)
		}
		result = append(result, entity)
	}
	return result, nil
}

func mapCalendarError(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", entities.ErrServiceUnavailable, err)
	}

	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", entities.ErrCalendarNotFound, err)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %w", entities.ErrInvalidRequest, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", entities.ErrServiceUnavailable, err)
	default:
		return err
	}
}
