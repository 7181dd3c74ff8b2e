// Package calendar предоставляет клиента сервиса календарей.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"calendarvault/internal/gateway/config"
	grpcPort "calendarvault/internal/gateway/ports/grpc"
	calendarv1 "calendarvault/pkg/api/calendar/v1"
	"calendarvault/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodCreateCalendar = "CreateCalendar"
	LogMethodGetCalendar    = "GetCalendar"

	ErrorFailedToConnect        = "failed to connect to calendar service"
	ErrorFailedToCreateCalendar = "failed to create calendar"
	ErrorFailedToGetCalendar    = "failed to get calendar"
	ErrorFailedToCloseConn      = "failed to close calendar service connection"

	// RequestIDHeader - ключ метаданных с идентификатором запроса.
	RequestIDHeader = "x-request-id"
)

// ErrCalendarServiceConnectionTimeout возвращается, если сервис не стал доступен за время ожидания.
var ErrCalendarServiceConnectionTimeout = errors.New("connection timeout: failed to connect to calendar service")

// Client реализует интерфейс CalendarServiceClient.
type Client struct {
	client         calendarv1.CalendarServiceClient
	conn           *grpc.ClientConn
	requestTimeout time.Duration
}

// NewCalendarClient подключается к сервису календарей и ждет готовности соединения.
func NewCalendarClient(ctx context.Context, cfg *config.GRPCClientConfig, opts ...grpc.DialOption) (grpcPort.CalendarServiceClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(cfg.CalendarService.GetAddress(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	if err := waitReady(ctx, conn, cfg.CalendarService.ConnectTimeout); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("%s: %w", ErrorFailedToCloseConn, errors.Join(err, closeErr))
		}
		return nil, err
	}

	return &Client{
		client:         calendarv1.NewCalendarServiceClient(conn),
		conn:           conn,
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

func waitReady(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn.Connect()

	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if !conn.WaitForStateChange(ctx, state) {
			return ErrCalendarServiceConnectionTimeout
		}
	}
}

// CreateCalendar отправляет уведомления на рендеринг и шифрование.
func (c *Client) CreateCalendar(ctx context.Context, req *calendarv1.CreateCalendarRequest) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreateCalendar))

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.client.CreateCalendar(callCtx, req); err != nil {
		log.Error(ctx, ErrorFailedToCreateCalendar, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToCreateCalendar, err)
	}

	return nil
}

// GetCalendar возвращает расшифрованный ICS документ.
func (c *Client) GetCalendar(ctx context.Context, calendarID string, iv []byte) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGetCalendar))

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.client.GetCalendar(callCtx, &calendarv1.GetCalendarRequest{
		CalendarID: calendarID,
		CalendarIV: iv,
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToGetCalendar, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGetCalendar, err)
	}

	return resp.GetCalendar(), nil
}

// Close закрывает соединение.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToCloseConn, err)
	}
	return nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if id, ok := logger.GetRequestID(ctx); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, id)
	}
	if c.requestTimeout > 0 {
		return context.WithTimeout(ctx, c.requestTimeout)
	}
	return context.WithCancel(ctx)
}
