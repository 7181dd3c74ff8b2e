package resilience

import (
	"context"

	"go.uber.org/zap"

	"calendarvault/pkg/logger"
)

// LogExecuting - сообщение о вызове через circuit breaker.
const LogExecuting = "executing operation with resilience"

// ServiceResilience обеспечивает отказоустойчивость вызовов одного сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cfg CircuitBreakerConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cfg),
	}
}

// CircuitBreaker возвращает используемый circuit breaker.
func (r *ServiceResilience) CircuitBreaker() *CircuitBreaker {
	return r.circuitBreaker
}

// ExecuteWithResilience выполняет операцию через circuit breaker без повторов.
func (r *ServiceResilience) ExecuteWithResilience(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, LogExecuting,
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.circuitBreaker.Execute(ctx, operation)
}

// ExecuteWithResult выполняет операцию с результатом через circuit breaker.
func ExecuteWithResult[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteWithResilience(ctx, operationName, func() error {
		var opErr error
		result, opErr = operation()
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
