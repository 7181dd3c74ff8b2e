// Package main реализует точку входа HTTP шлюза календарей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"calendarvault/internal/gateway/adapters/cache"
	"calendarvault/internal/gateway/adapters/grpc/calendar"
	httpServer "calendarvault/internal/gateway/adapters/http"
	"calendarvault/internal/gateway/adapters/postgres"
	jwtService "calendarvault/internal/gateway/adapters/services"
	"calendarvault/internal/gateway/app/services"
	"calendarvault/internal/gateway/config"
	"calendarvault/internal/gateway/resilience"
	pgdb "calendarvault/pkg/db/postgres"
	"calendarvault/pkg/logger"
	"calendarvault/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "GATEWAY_LOGGER_MODE"
	EnvLoggerLevel = "GATEWAY_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrMigrate              = "failed to apply migrations"
	ErrConnectDatabase      = "failed to connect to database"
	ErrCreateCalendarClient = "failed to create calendar client"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "gateway service started"
	LogServiceShutdownDone = "gateway service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingClient       = "closing calendar client"
	LogClosingCache        = "closing Redis connection"
	LogClosingDatabase     = "closing database"
	LogInitDatabase        = "initializing calendar registry"
	LogInitClients         = "initializing gRPC clients"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
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

		log.Info(ctx, LogInitDatabase)
		if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrMigrate, zap.Error(err))
			exitCode = 1
			return
		}

		db, err := pgdb.New(ctx, cfg.Postgres.PoolConfig())
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitClients)
		calendarClient, err := calendar.NewCalendarClient(ctx, &cfg.GRPC)
		if err != nil {
			log.Error(ctx, ErrCreateCalendarClient, zap.Error(err))
			_ = db.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			_ = calendarClient.Close()
			_ = db.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		calendarService := services.NewCalendarService(
			calendarClient,
			postgres.NewCalendarRepository(db.Pool()),
			redisCache,
			resilience.CircuitBreakerConfig{
				ErrorThreshold:   cfg.CircuitBreaker.ErrorThreshold,
				Timeout:          cfg.CircuitBreaker.OpenTimeout,
				SuccessThreshold: cfg.CircuitBreaker.SuccessThreshold,
			},
		)
		tokenService := jwtService.NewJWT(cfg.JWT.SecretKey, cfg.JWT.Issuer)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		httpServer.SetupRouter(app, calendarService, tokenService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := app.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
				}

				log.Info(ctx, LogClosingClient)
				if err := calendarClient.Close(); err != nil {
					return err
				}

				log.Info(ctx, LogClosingCache)
				if err := redisCache.Close(); err != nil {
					return err
				}

				log.Info(ctx, LogClosingDatabase)
				return db.Close(ctx)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
