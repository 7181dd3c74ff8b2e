// Package main реализует точку входа сервиса календарей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"calendarvault/internal/calendar/adapters/crypto"
	"calendarvault/internal/calendar/adapters/filesystem"
	"calendarvault/internal/calendar/adapters/grpc"
	"calendarvault/internal/calendar/adapters/ics"
	"calendarvault/internal/calendar/app"
	"calendarvault/internal/calendar/config"
	calendarv1 "calendarvault/pkg/api/calendar/v1"
	"calendarvault/pkg/logger"
	"calendarvault/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "CALENDAR_LOGGER_MODE"
	EnvLoggerLevel = "CALENDAR_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitCodec            = "failed to initialize encryption"
	ErrStartGRPC            = "failed to start gRPC server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "calendar service started"
	LogServiceShutdownDone = "calendar service shutdown complete"
	LogStoppingGRPC        = "stopping gRPC server"
	LogInitStorage         = "initializing document storage"
	LogInitUseCases        = "initializing use cases"
	LogInitGRPCServer      = "initializing gRPC server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		codec, err := crypto.NewAEAD(cfg.Encryption.KeyBytes())
		if err != nil {
			log.Error(ctx, ErrInitCodec, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStorage, zap.String("data_dir", cfg.Storage.DataDir))
		repo := filesystem.NewDocumentRepository(cfg.Storage.DataDir)

		log.Info(ctx, LogInitUseCases)
		calendarUseCase := app.NewCalendarUseCase(ics.NewRenderer(), codec, repo)

		log.Info(ctx, LogInitGRPCServer)
		grpcServer := grpc.New(&cfg.GRPC)
		grpcServer.RegisterGRPCService(&calendarv1.CalendarService_ServiceDesc, grpc.NewCalendarHandler(calendarUseCase))

		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			exitCode = 1
			return
		}

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				return grpcServer.Stop(ctx)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
