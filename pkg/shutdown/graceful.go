// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"calendarvault/pkg/logger"
)

const (
	msgSignalReceived   = "shutdown signal received"
	msgHookFailed       = "shutdown hook failed"
	msgShutdownTimedOut = "graceful shutdown timed out"
	msgShutdownComplete = "graceful shutdown complete"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM либо до отмены ctx,
// затем параллельно выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	<-sigCtx.Done()
	stop()

	log := logger.Log(ctx)
	log.Info(ctx, msgSignalReceived)

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
// Возвращает false, если время истекло.
func Run(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) bool {
	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.Log(ctx)

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, msgHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(ctx, msgShutdownComplete)
		return true
	case <-hookCtx.Done():
		log.Warn(ctx, msgShutdownTimedOut, zap.Duration("timeout", timeout))
		return false
	}
}
