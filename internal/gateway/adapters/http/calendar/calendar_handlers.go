// Package calendar содержит HTTP-обработчики публикации и загрузки календарей.
package calendar

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"calendarvault/internal/gateway/adapters/http/middleware"
	"calendarvault/internal/gateway/app/dto"
	"calendarvault/internal/gateway/domain/entities"
	"calendarvault/internal/gateway/ports/services"
	"calendarvault/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerPublish  = "handling publish calendar request"
	LogHandlerCreate   = "handling create calendar request"
	LogHandlerDownload = "handling download calendar request"

	ErrMsgInvalidCalendarID  = "invalid calendar id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnauthorized       = "unauthorized"
	ErrMsgForbidden          = "calendar belongs to another user"
	ErrMsgNotFound           = "calendar not found"
	ErrMsgUnavailable        = "calendar service unavailable"
	ErrMsgInternal           = "internal server error"

	ParamCalendarID = "calendar_id"

	// ContentTypeCalendar - тип содержимого ICS документа.
	ContentTypeCalendar = "text/calendar"
	// ContentDisposition - имя файла при загрузке календаря.
	ContentDisposition = "attachment; filename=validity-calendar.ics"
)

// Handler обработчик HTTP-запросов для работы с календарями.
type Handler struct {
	calendarService services.CalendarService
}

// NewHandler создает новый экземпляр обработчика календарей.
func NewHandler(calendarService services.CalendarService) *Handler {
	return &Handler{calendarService: calendarService}
}

// Publish перестраивает календарь с идентификатором из пути.
func (h *Handler) Publish(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Publish"))
	log.Debug(userCtx, LogHandlerPublish)

	calendarID := ctx.Params(ParamCalendarID)
	if err := entities.ValidateCalendarID(calendarID); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrMsgInvalidCalendarID})
	}

	return h.publish(ctx, calendarID, fiber.StatusOK)
}

// Create публикует календарь под новым идентификатором.
func (h *Handler) Create(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.Create")).Debug(userCtx, LogHandlerCreate)

	return h.publish(ctx, NewCalendarID(), fiber.StatusCreated)
}

func (h *Handler) publish(ctx fiber.Ctx, calendarID string, successStatus int) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("calendarID", calendarID))

	var req dto.PublishCalendarRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrMsgInvalidRequestBody})
	}

	resp, err := h.calendarService.Publish(userCtx, middleware.UserID(ctx), calendarID, &req)
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.Status(successStatus).JSON(resp)
}

// Download отдает ICS документ как вложение.
func (h *Handler) Download(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Download"))
	log.Debug(userCtx, LogHandlerDownload)

	calendarID := ctx.Params(ParamCalendarID)
	if err := entities.ValidateCalendarID(calendarID); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrMsgInvalidCalendarID})
	}

	body, err := h.calendarService.Download(userCtx, calendarID)
	if err != nil {
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, ContentTypeCalendar)
	ctx.Set(fiber.HeaderContentDisposition, ContentDisposition)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// NewCalendarID генерирует идентификатор календаря из 32 шестнадцатеричных символов.
func NewCalendarID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func handleError(ctx fiber.Ctx, err error) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx)

	status, message := fiber.StatusInternalServerError, ErrMsgInternal
	switch {
	case errors.Is(err, entities.ErrInvalidCalendarID):
		status, message = fiber.StatusBadRequest, ErrMsgInvalidCalendarID
	case errors.Is(err, entities.ErrInvalidRequest):
		status, message = fiber.StatusBadRequest, ErrMsgInvalidRequestBody
	case errors.Is(err, entities.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, ErrMsgUnauthorized
	case errors.Is(err, entities.ErrCalendarForbidden):
		status, message = fiber.StatusForbidden, ErrMsgForbidden
	case errors.Is(err, entities.ErrCalendarNotFound):
		status, message = fiber.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, entities.ErrServiceUnavailable):
		status, message = fiber.StatusServiceUnavailable, ErrMsgUnavailable
	}

	if status >= fiber.StatusInternalServerError {
		log.Error(userCtx, message, zap.Error(err))
	} else {
		log.Debug(userCtx, message, zap.Error(err))
	}

	return ctx.Status(status).JSON(dto.ErrorResponse{Error: message})
}
