// Package grpc предоставляет gRPC сервер и обработчик сервиса календарей.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"calendarvault/internal/calendar/config"
	"calendarvault/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "Starting gRPC server"
	LogServerStarted  = "gRPC server started"
	LogServerStopping = "Stopping gRPC server"
	LogServerStopped  = "gRPC server stopped"
	LogRequestHandled = "gRPC request handled"
	ErrServerStart    = "failed to start gRPC server"

	// RequestIDHeader - ключ метаданных с идентификатором запроса.
	RequestIDHeader = "x-request-id"
)

// Server представляет gRPC сервер.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
}

// New создает gRPC сервер с перехватчиками идентификатора запроса и журнала.
func New(cfg *config.GRPCConfig, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(RequestIDInterceptor, LoggingInterceptor)}, opts...)
	server := grpc.NewServer(opts...)
	reflection.Register(server)

	return &Server{
		cfg:    cfg,
		server: server,
	}
}

// Start слушает адрес из конфигурации и обслуживает запросы в фоне.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.Serve(ctx, listener)
	return nil
}

// Serve обслуживает запросы на переданном listener в фоне.
func (s *Server) Serve(ctx context.Context, listener net.Listener) {
	log := logger.Log(ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
}

// Stop останавливает gRPC сервер, дожидаясь завершения запросов.
// Если ctx истекает раньше, соединения закрываются принудительно.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}

	log.Info(ctx, LogServerStopped)
	return nil
}

// RegisterGRPCService регистрирует gRPC сервис в сервере используя дескриптор сервиса.
func (s *Server) RegisterGRPCService(desc *grpc.ServiceDesc, impl any) {
	s.server.RegisterService(desc, impl)
}

// RequestIDInterceptor помещает идентификатор запроса из метаданных в контекст
// или генерирует новый.
func RequestIDInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 {
			requestID = values[0]
		}
	}

	ctx = logger.NewRequestIDContext(ctx, requestID)
	if id, ok := logger.GetRequestID(ctx); ok {
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))
	}
	return handler(ctx, req)
}

// LoggingInterceptor пишет метод, код ответа и длительность запроса.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger.Log(ctx).Info(ctx, LogRequestHandled,
		zap.String("method", info.FullMethod),
		zap.String("code", status.Code(err).String()),
		zap.Duration("duration", time.Since(start)))
	return resp, err
}
