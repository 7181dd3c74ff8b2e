package grpc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"calendarvault/internal/calendar/domain"
	"calendarvault/internal/calendar/domain/entities"
	"calendarvault/internal/calendar/ports/api"
	calendarv1 "calendarvault/pkg/api/calendar/v1"
	"calendarvault/pkg/logger"
)

// Константы для логирования и ответов об ошибках.
const (
	LogCreateCalendarRequest = "processing create calendar request"
	LogGetCalendarRequest    = "processing get calendar request"

	ErrCreateCalendarMsg  = "create calendar error"
	ErrGetCalendarMsg     = "get calendar error"
	ErrInvalidIVMsg       = "calendar_iv must be 12 bytes"
	ErrInvalidTimezoneMsg = "unknown timezone"
	ErrInvalidIDMsg       = "invalid calendar_id"
	ErrMissingDateMsg     = "notification_date is required"
	ErrNotFoundMsg        = "calendar not found"
	ErrInternalMsg        = "internal calendar service error"

	causeAuthentication = "authentication"
	causePadding        = "padding"
	causeText           = "text"
)

// wrapGrpcError оборачивает статус gRPC для единообразной обработки.
func wrapGrpcError(code codes.Code, message string) error {
	return fmt.Errorf("gRPC error: %w", status.Error(code, message))
}

// CalendarHandler реализует gRPC интерфейс CalendarService.
type CalendarHandler struct {
	calendarv1.UnimplementedCalendarServiceServer
	useCase api.CalendarUseCase
}

// NewCalendarHandler создает обработчик CalendarService.
func NewCalendarHandler(useCase api.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{useCase: useCase}
}

// CreateCalendar проверяет запрос и сохраняет календарь.
func (h *CalendarHandler) CreateCalendar(ctx context.Context, req *calendarv1.CreateCalendarRequest) (*calendarv1.CreateCalendarResponse, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "CreateCalendar"),
		zap.String("calendar_id", req.CalendarID))
	log.Info(ctx, LogCreateCalendarRequest, zap.Int("entities", len(req.CalendarEntities)))

	if err := domain.ValidateNonce(req.CalendarIV); err != nil {
		return nil, wrapGrpcError(codes.InvalidArgument, ErrInvalidIVMsg)
	}
	if _, err := domain.LoadTimezone(req.Timezone); err != nil {
		return nil, wrapGrpcError(codes.InvalidArgument, ErrInvalidTimezoneMsg)
	}
	if err := domain.ValidateDocumentID(req.CalendarID); err != nil {
		return nil, wrapGrpcError(codes.InvalidArgument, ErrInvalidIDMsg)
	}

	notifications, err := toNotifications(req.CalendarEntities)
	if err != nil {
		return nil, wrapGrpcError(codes.InvalidArgument, ErrMissingDateMsg)
	}

	if err := h.useCase.CreateCalendar(ctx, req.CalendarID, notifications, req.Timezone, req.CalendarIV); err != nil {
		log.Error(ctx, ErrCreateCalendarMsg, zap.Error(err))
		return nil, toStatus(err)
	}

	return &calendarv1.CreateCalendarResponse{}, nil
}

// GetCalendar возвращает расшифрованный календарь.
func (h *CalendarHandler) GetCalendar(ctx context.Context, req *calendarv1.GetCalendarRequest) (*calendarv1.GetCalendarResponse, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "GetCalendar"),
		zap.String("calendar_id", req.CalendarID))
	log.Info(ctx, LogGetCalendarRequest)

	if err := domain.ValidateNonce(req.CalendarIV); err != nil {
		return nil, wrapGrpcError(codes.InvalidArgument, ErrInvalidIVMsg)
	}

	document, err := h.useCase.GetCalendar(ctx, req.CalendarID, req.CalendarIV)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if cause := decryptionCause(err); cause != "" {
			fields = append(fields, zap.String("cause", cause))
		}
		log.Error(ctx, ErrGetCalendarMsg, fields...)
		return nil, toStatus(err)
	}

	return &calendarv1.GetCalendarResponse{Calendar: []byte(document)}, nil
}

func toNotifications(list []*calendarv1.CalendarEntity) ([]entities.Notification, error) {
	notifications := make([]entities.Notification, 0, len(list))
	for _, e := range list {
		if e.GetNotificationDate() == nil {
			return nil, domain.ErrMissingDate
		}
		n := entities.Notification{
			NotificationID:   e.NotificationID,
			DocumentID:       e.DocumentID,
			DocumentTitle:    e.DocumentTitle,
			NotificationDate: e.NotificationDate.AsTime(),
		}
		if e.ExpiresAt != nil {
			n.ExpiresAt = e.ExpiresAt.AsTime()
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidNonce):
		return wrapGrpcError(codes.InvalidArgument, ErrInvalidIVMsg)
	case errors.Is(err, domain.ErrInvalidTimezone):
		return wrapGrpcError(codes.InvalidArgument, ErrInvalidTimezoneMsg)
	case errors.Is(err, domain.ErrValidation):
		return wrapGrpcError(codes.InvalidArgument, ErrInvalidIDMsg)
	case errors.Is(err, domain.ErrNotFound):
		return wrapGrpcError(codes.NotFound, ErrNotFoundMsg)
	default:
		return wrapGrpcError(codes.Internal, ErrInternalMsg)
	}
}

func decryptionCause(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return causeAuthentication
	case errors.Is(err, domain.ErrInvalidPadding):
		return causePadding
	case errors.Is(err, domain.ErrInvalidText):
		return causeText
	default:
		return ""
	}
}
